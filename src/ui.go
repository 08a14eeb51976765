package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const defaultColWidth = 160

type editState int

const (
	editClosed editState = iota
	editCreated
	editInitialized
)

func (s editState) String() string {
	switch s {
	case editCreated:
		return "created"
	case editInitialized:
		return "initialized"
	default:
		return "closed"
	}
}

// editSession is one open editor. It ends on commit or cancel.
type editSession struct {
	state    editState
	cell     widget.TableCellID
	editor   fyne.CanvasObject
	delegate ItemDelegate
}

// TableView shows a TableModel in a fyne table and opens a per-column
// editor when a cell is selected.
type TableView struct {
	widget.BaseWidget

	model     TableModel
	table     *widget.Table
	delegates map[int]ItemDelegate
	fallback  ItemDelegate
	edit      *editSession
	canvas    fyne.Canvas
}

func NewTableView(model TableModel) *TableView {
	v := &TableView{
		model:     model,
		delegates: map[int]ItemDelegate{},
		fallback:  TextDelegate{},
	}

	v.table = widget.NewTable(
		func() (int, int) { return v.model.RowCount(), v.model.ColumnCount() },
		func() fyne.CanvasObject { return container.NewStack(widget.NewLabel("")) },
		v.updateCell,
	)
	v.table.ShowHeaderRow = true
	v.table.ShowHeaderColumn = true
	v.table.CreateHeader = func() fyne.CanvasObject { return widget.NewLabel("") }
	v.table.UpdateHeader = v.updateHeader
	v.table.OnSelected = v.selected

	for c := 0; c < model.ColumnCount(); c++ {
		v.table.SetColumnWidth(c, defaultColWidth)
	}

	model.OnDataChanged(func(row, col int, _ []Role) {
		v.table.Refresh()
	})

	v.ExtendBaseWidget(v)
	return v
}

func (v *TableView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.table)
}

// SetColumnDelegate replaces the default text editor for one column.
func (v *TableView) SetColumnDelegate(col int, d ItemDelegate) {
	v.delegates[col] = d
}

func (v *TableView) delegateFor(col int) ItemDelegate {
	if d, ok := v.delegates[col]; ok {
		return d
	}
	return v.fallback
}

// state reports where the current edit session is.
func (v *TableView) state() editState {
	if v.edit == nil {
		return editClosed
	}
	return v.edit.state
}

// BindKeys routes Escape on c to cancel the open editor when nothing has
// focus. Focused editors handle Escape themselves.
func (v *TableView) BindKeys(c fyne.Canvas) {
	v.canvas = c
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			v.CancelEdit()
		}
	})
}

func (v *TableView) updateHeader(id widget.TableCellID, o fyne.CanvasObject) {
	lbl := o.(*widget.Label)
	switch {
	case id.Row < 0 && id.Col >= 0:
		lbl.TextStyle = fyne.TextStyle{Bold: true}
		lbl.SetText(v.model.HeaderData(id.Col, Horizontal))
	case id.Col < 0 && id.Row >= 0:
		lbl.TextStyle = fyne.TextStyle{}
		lbl.SetText(v.model.HeaderData(id.Row, Vertical))
	default:
		lbl.SetText("")
	}
}

// updateCell swaps the cell between its label and the open editor.
func (v *TableView) updateCell(id widget.TableCellID, o fyne.CanvasObject) {
	cell := o.(*fyne.Container)
	lbl := cell.Objects[0].(*widget.Label)
	lbl.SetText(displayText(v.model.Data(id.Row, id.Col, DisplayRole)))

	if v.edit != nil && v.edit.cell == id {
		if len(cell.Objects) != 2 || cell.Objects[1] != v.edit.editor {
			cell.Objects = []fyne.CanvasObject{lbl, v.edit.editor}
		}
		lbl.Hide()
		v.edit.delegate.UpdateEditorGeometry(v.edit.editor, fyne.NewPos(0, 0), cell.Size())
		cell.Refresh()
		return
	}

	lbl.Show()
	if len(cell.Objects) > 1 {
		cell.Objects = cell.Objects[:1]
		cell.Refresh()
	}
}

// selected commits any editor open on another cell, then edits id.
func (v *TableView) selected(id widget.TableCellID) {
	if v.edit != nil {
		if v.edit.cell == id {
			return
		}
		v.commitEdit()
	}
	v.OpenEditor(id)
}

// OpenEditor starts an edit session on id using the column's delegate.
func (v *TableView) OpenEditor(id widget.TableCellID) {
	if id.Row < 0 || id.Row >= v.model.RowCount() || id.Col < 0 || id.Col >= v.model.ColumnCount() {
		return
	}
	if v.model.Flags(id.Row, id.Col)&ItemIsEditable == 0 {
		return
	}
	if v.edit != nil {
		v.CancelEdit()
	}

	d := v.delegateFor(id.Col)
	s := &editSession{state: editClosed, cell: id, delegate: d}
	v.edit = s

	s.editor = d.CreateEditor(func() { v.commit(s) }, func() { v.cancel(s) })
	s.state = editCreated
	d.SetEditorData(s.editor, v.model, id.Row, id.Col)
	s.state = editInitialized

	v.table.Refresh()
	if f, ok := s.editor.(fyne.Focusable); ok && v.canvas != nil {
		v.canvas.Focus(f)
	}
}

// commit writes s back through its delegate and closes it. Calls made while
// the editor is still being initialized, or for a stale session, are ignored.
func (v *TableView) commit(s *editSession) {
	if s == nil || s != v.edit || s.state != editInitialized {
		return
	}
	s.delegate.SetModelData(s.editor, v.model, s.cell.Row, s.cell.Col)
	v.closeEditor()
}

// commitEdit commits the open editor, if any.
func (v *TableView) commitEdit() {
	v.commit(v.edit)
}

// cancel closes s without writing, unless it is no longer the open session.
func (v *TableView) cancel(s *editSession) {
	if s == nil || s != v.edit {
		return
	}
	v.closeEditor()
}

// CancelEdit closes the open editor without touching the model.
func (v *TableView) CancelEdit() {
	if v.edit == nil {
		return
	}
	v.closeEditor()
}

func (v *TableView) closeEditor() {
	cell := v.edit.cell
	v.edit = nil
	// the detached editor must not keep receiving keys
	if v.canvas != nil {
		v.canvas.Unfocus()
	}
	v.table.Unselect(cell)
	v.table.Refresh()
}

// createUI builds the window content: the table plus a status line that
// echoes the last edited cell.
func createUI(win fyne.Window, model *SheetModel) fyne.CanvasObject {
	view := NewTableView(model)
	view.SetColumnDelegate(model.CodedColumn(), NewComboDelegate(model.Lookup()))
	view.BindKeys(win.Canvas())

	status := widget.NewLabel("")
	model.OnDataChanged(func(row, col int, _ []Role) {
		status.SetText(fmt.Sprintf("Row %s, %s: %s",
			model.HeaderData(row, Vertical),
			model.HeaderData(col, Horizontal),
			displayText(model.Data(row, col, DisplayRole))))
	})

	return container.NewBorder(nil, status, nil, nil, view)
}
