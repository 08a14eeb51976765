package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) *SheetModel {
	t.Helper()
	db, err := initializeDB(memoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := defaultSheetConfig()
	m, err := NewSheetModel(db, cfg.Rows, cfg.Headers, cfg.CodedColumn, newLookupTable(cfg.Lookup, cfg.UnknownLabel))
	require.NoError(t, err)
	return m
}

func TestNewSheetModel(t *testing.T) {
	db, err := initializeDB(memoryDSN)
	require.NoError(t, err)
	defer db.Close()
	lookup := newLookupTable(defaultSheetConfig().Lookup, "unknown")

	tests := []struct {
		name     string
		rows     [][]int
		headers  []string
		codedCol int
		wantErr  string
	}{
		{name: "ok", rows: [][]int{{1, 101}}, headers: []string{"a", "b"}, codedCol: 1},
		{name: "short row", rows: [][]int{{1, 101}, {2}}, headers: []string{"a", "b"}, codedCol: 1, wantErr: "row 1 has 1 cells, want 2"},
		{name: "no rows", headers: []string{"a"}, wantErr: "at least one row"},
		{name: "coded column out of range", rows: [][]int{{1}}, headers: []string{"a"}, codedCol: 3, wantErr: "coded column 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewSheetModel(db, tt.rows, tt.headers, tt.codedCol, lookup)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.rows), m.RowCount())
			assert.Equal(t, len(tt.headers), m.ColumnCount())
		})
	}
}

func TestSheetModelDimensions(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 3, m.RowCount())
	assert.Equal(t, 3, m.ColumnCount())

	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.SetData(r, c, r*10+c, EditRole)
			m.SetData(r, c, -1, DisplayRole)
		}
	}
	assert.Equal(t, 3, m.RowCount())
	assert.Equal(t, 3, m.ColumnCount())
}

func TestSheetModelDisplayMatchesLookup(t *testing.T) {
	m := newTestModel(t)
	m.SetData(2, 1, 12345, EditRole)

	for r := 0; r < m.RowCount(); r++ {
		code, ok := m.Data(r, m.CodedColumn(), EditRole).(int)
		require.True(t, ok, "row %d", r)
		want := "unknown"
		if m.Lookup().IndexOf(code) != -1 {
			want = m.Lookup().Label(code)
		}
		assert.Equal(t, want, m.Data(r, m.CodedColumn(), DisplayRole), "row %d", r)
	}
}

func TestSheetModelData(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		name     string
		row, col int
		role     Role
		want     any
	}{
		{"coded display", 0, 1, DisplayRole, "Cash"},
		{"coded display row 2", 1, 1, DisplayRole, "Checking"},
		{"coded display row 3", 2, 1, DisplayRole, "Accounts Payable"},
		{"coded edit", 0, 1, EditRole, 101},
		{"plain display", 0, 2, DisplayRole, 3},
		{"plain edit", 2, 0, EditRole, 3},
		{"other role", 0, 1, ToolTipRole, nil},
		{"row out of range", 3, 0, EditRole, nil},
		{"col out of range", 0, -1, DisplayRole, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Data(tt.row, tt.col, tt.role))
		})
	}
}

func TestSheetModelSetDataRoundTrip(t *testing.T) {
	m := newTestModel(t)
	for _, v := range []int{0, -7, 201, 999, 1 << 40} {
		for c := 0; c < m.ColumnCount(); c++ {
			require.True(t, m.SetData(1, c, v, EditRole))
			assert.Equal(t, v, m.Data(1, c, EditRole))
		}
	}
}

func TestSheetModelSetDataRejectsOtherRoles(t *testing.T) {
	m := newTestModel(t)
	var changes int
	m.OnDataChanged(func(int, int, []Role) { changes++ })

	for _, role := range []Role{DisplayRole, ToolTipRole, Role(42)} {
		assert.False(t, m.SetData(0, 1, 311, role))
	}
	assert.False(t, m.SetData(5, 0, 1, EditRole))
	assert.Equal(t, 101, m.Data(0, 1, EditRole))
	assert.Zero(t, changes)
}

func TestSheetModelUnknownCode(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "Cash", m.Data(0, 1, DisplayRole))

	require.True(t, m.SetData(0, 1, 999, EditRole))
	assert.Equal(t, "unknown", m.Data(0, 1, DisplayRole))
	assert.Equal(t, 999, m.Data(0, 1, EditRole))
}

func TestSheetModelDataChanged(t *testing.T) {
	m := newTestModel(t)
	type change struct {
		row, col int
		roles    []Role
	}
	var got []change
	m.OnDataChanged(func(row, col int, roles []Role) {
		got = append(got, change{row, col, roles})
	})

	require.True(t, m.SetData(2, 0, 8, EditRole))
	require.Len(t, got, 1)
	assert.Equal(t, change{2, 0, []Role{DisplayRole, EditRole}}, got[0])
	// neighbours untouched
	assert.Equal(t, 311, m.Data(2, 1, EditRole))
	assert.Equal(t, 2, m.Data(2, 2, EditRole))
}

func TestSheetModelHeaderData(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, "Column1", m.HeaderData(0, Horizontal))
	assert.Equal(t, "Column2 (Account)", m.HeaderData(1, Horizontal))
	assert.Equal(t, "Column3", m.HeaderData(2, Horizontal))
	assert.Equal(t, "", m.HeaderData(3, Horizontal))
	assert.Equal(t, "1", m.HeaderData(0, Vertical))
	assert.Equal(t, "3", m.HeaderData(2, Vertical))
}

func TestSheetModelFlags(t *testing.T) {
	m := newTestModel(t)
	want := ItemIsEditable | ItemIsEnabled | ItemIsSelectable
	for r := 0; r < m.RowCount(); r++ {
		for c := 0; c < m.ColumnCount(); c++ {
			assert.Equal(t, want, m.Flags(r, c))
		}
	}
}

func TestDisplayText(t *testing.T) {
	assert.Equal(t, "", displayText(nil))
	assert.Equal(t, "Cash", displayText("Cash"))
	assert.Equal(t, "42", displayText(42))
	assert.Equal(t, "1.5", displayText(1.5))
}
