package main

import (
	"database/sql"
	"fmt"
	"log"
	"strconv"
)

// Role is the purpose of a cell read or write.
type Role int

const (
	DisplayRole Role = iota // value shown to the user
	EditRole                // authoritative stored value
	ToolTipRole
)

// Orientation selects between column headers and row headers.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// ItemFlags describe what the view may do with a cell.
type ItemFlags uint8

const (
	ItemIsSelectable ItemFlags = 1 << iota
	ItemIsEditable
	ItemIsEnabled
)

// TableModel is what the table view and the delegates query.
type TableModel interface {
	RowCount() int
	ColumnCount() int
	Data(row, col int, role Role) any
	SetData(row, col int, value int, role Role) bool
	HeaderData(section int, orientation Orientation) string
	Flags(row, col int) ItemFlags
	OnDataChanged(fn func(row, col int, roles []Role))
}

// SheetModel is a fixed-size grid of ints kept in sqlite, with one coded
// column rendered through a lookup table.
type SheetModel struct {
	db        *sql.DB
	ids       []int64
	headers   []string
	codedCol  int
	lookup    *LookupTable
	listeners []func(row, col int, roles []Role)
}

var _ TableModel = (*SheetModel)(nil)

// NewSheetModel stores rows in db and returns a model over them. Every row
// must have exactly len(headers) cells.
func NewSheetModel(db *sql.DB, rows [][]int, headers []string, codedCol int, lookup *LookupTable) (*SheetModel, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet needs at least one row")
	}
	if codedCol < 0 || codedCol >= len(headers) {
		return nil, fmt.Errorf("coded column %d out of range", codedCol)
	}
	m := &SheetModel{
		db:       db,
		headers:  append([]string(nil), headers...),
		codedCol: codedCol,
		lookup:   lookup,
	}
	for i, r := range rows {
		if len(r) != len(headers) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(r), len(headers))
		}
		id, err := insertRow(db, r)
		if err != nil {
			return nil, fmt.Errorf("storing row %d: %w", i, err)
		}
		m.ids = append(m.ids, id)
	}
	return m, nil
}

func (m *SheetModel) RowCount() int    { return len(m.ids) }
func (m *SheetModel) ColumnCount() int { return len(m.headers) }

// CodedColumn returns the index of the column rendered through the lookup.
func (m *SheetModel) CodedColumn() int { return m.codedCol }

// Lookup returns the table used to label the coded column.
func (m *SheetModel) Lookup() *LookupTable { return m.lookup }

func (m *SheetModel) valid(row, col int) bool {
	return row >= 0 && row < len(m.ids) && col >= 0 && col < len(m.headers)
}

// Data returns the label for the coded column under DisplayRole, the stored
// int for every other DisplayRole or EditRole read, and nil otherwise.
func (m *SheetModel) Data(row, col int, role Role) any {
	if !m.valid(row, col) {
		return nil
	}
	if role != DisplayRole && role != EditRole {
		return nil
	}
	v, err := getCell(m.db, m.ids[row], col)
	if err != nil {
		log.Printf("warning: reading cell (%d,%d): %v", row, col, err)
		return nil
	}
	if role == DisplayRole && col == m.codedCol {
		return m.lookup.Label(v)
	}
	return v
}

// SetData overwrites a cell for EditRole only. The value is not checked
// against the lookup; unknown codes display as the sentinel.
func (m *SheetModel) SetData(row, col int, value int, role Role) bool {
	if role != EditRole || !m.valid(row, col) {
		return false
	}
	if err := updateCell(m.db, m.ids[row], col, value); err != nil {
		log.Printf("warning: writing cell (%d,%d): %v", row, col, err)
		return false
	}
	for _, fn := range m.listeners {
		fn(row, col, []Role{DisplayRole, EditRole})
	}
	return true
}

// HeaderData returns the column header, or the 1-based row number for rows.
func (m *SheetModel) HeaderData(section int, orientation Orientation) string {
	if orientation == Vertical {
		return strconv.Itoa(section + 1)
	}
	if section < 0 || section >= len(m.headers) {
		return ""
	}
	return m.headers[section]
}

func (m *SheetModel) Flags(row, col int) ItemFlags {
	return ItemIsEditable | ItemIsEnabled | ItemIsSelectable
}

func (m *SheetModel) OnDataChanged(fn func(row, col int, roles []Role)) {
	m.listeners = append(m.listeners, fn)
}

// displayText formats a DisplayRole value for a label.
func displayText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
