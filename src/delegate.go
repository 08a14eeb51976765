package main

import (
	"log"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// ItemDelegate creates and drives the editor for a cell. The view calls the
// methods in order: CreateEditor, SetEditorData, UpdateEditorGeometry, and
// SetModelData once the editor asks to commit.
type ItemDelegate interface {
	// CreateEditor builds a fresh editor. The editor calls commit when the
	// user has finished choosing a value and cancel when Escape is pressed
	// while it has focus.
	CreateEditor(commit, cancel func()) fyne.CanvasObject
	SetEditorData(editor fyne.CanvasObject, model TableModel, row, col int)
	SetModelData(editor fyne.CanvasObject, model TableModel, row, col int)
	UpdateEditorGeometry(editor fyne.CanvasObject, pos fyne.Position, size fyne.Size)
}

// comboEditor is a dropdown over a lookup table: labels are shown, the code
// at the same index is what gets stored.
type comboEditor struct {
	widget.Select
	lookup   *LookupTable
	onCancel func()
}

func newComboEditor(lookup *LookupTable, onChanged, onCancel func()) *comboEditor {
	c := &comboEditor{lookup: lookup, onCancel: onCancel}
	c.Options = lookup.Labels()
	c.PlaceHolder = "(Select one)"
	c.OnChanged = func(string) {
		if onChanged != nil {
			onChanged()
		}
	}
	c.ExtendBaseWidget(c)
	return c
}

// TypedKey cancels on Escape and leaves other keys to the dropdown.
func (c *comboEditor) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape && c.onCancel != nil {
		c.onCancel()
		return
	}
	c.Select.TypedKey(ev)
}

// FindData returns the option index holding code, or -1.
func (c *comboEditor) FindData(code int) int { return c.lookup.IndexOf(code) }

// CurrentIndex is the selected option, -1 when nothing is selected.
func (c *comboEditor) CurrentIndex() int { return c.SelectedIndex() }

// CurrentText is the label of the selected option.
func (c *comboEditor) CurrentText() string { return c.Selected }

// CurrentData returns the code of the selected option.
func (c *comboEditor) CurrentData() (int, bool) {
	return c.lookup.CodeAt(c.SelectedIndex())
}

func (c *comboEditor) SetCurrentIndex(i int) {
	c.SetSelectedIndex(i)
}

// ComboDelegate edits a coded column through a dropdown of lookup entries.
type ComboDelegate struct {
	lookup *LookupTable
}

func NewComboDelegate(lookup *LookupTable) *ComboDelegate {
	return &ComboDelegate{lookup: lookup}
}

func (d *ComboDelegate) CreateEditor(commit, cancel func()) fyne.CanvasObject {
	return newComboEditor(d.lookup, commit, cancel)
}

// SetEditorData selects the option matching the stored code. An unknown code
// leaves the dropdown without a selection.
func (d *ComboDelegate) SetEditorData(editor fyne.CanvasObject, model TableModel, row, col int) {
	combo, ok := editor.(*comboEditor)
	if !ok {
		return
	}
	code, ok := model.Data(row, col, EditRole).(int)
	if !ok {
		return
	}
	if idx := combo.FindData(code); idx != -1 {
		combo.SetCurrentIndex(idx)
	}
}

// SetModelData writes the selected code back. Whether it is accepted is up
// to the model.
func (d *ComboDelegate) SetModelData(editor fyne.CanvasObject, model TableModel, row, col int) {
	combo, ok := editor.(*comboEditor)
	if !ok {
		return
	}
	code, ok := combo.CurrentData()
	if !ok {
		return
	}
	model.SetData(row, col, code, EditRole)
}

func (d *ComboDelegate) UpdateEditorGeometry(editor fyne.CanvasObject, pos fyne.Position, size fyne.Size) {
	editor.Move(pos)
	editor.Resize(size)
}

// cellEntry is a single-line entry that reports Escape instead of ignoring it.
type cellEntry struct {
	widget.Entry
	onCancel func()
}

func newCellEntry(onCancel func()) *cellEntry {
	e := &cellEntry{onCancel: onCancel}
	e.ExtendBaseWidget(e)
	return e
}

func (e *cellEntry) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape && e.onCancel != nil {
		e.onCancel()
		return
	}
	e.Entry.TypedKey(ev)
}

// TextDelegate edits the raw int of a cell in a single-line entry.
type TextDelegate struct{}

func (TextDelegate) CreateEditor(commit, cancel func()) fyne.CanvasObject {
	e := newCellEntry(cancel)
	e.OnSubmitted = func(string) {
		if commit != nil {
			commit()
		}
	}
	return e
}

func (TextDelegate) SetEditorData(editor fyne.CanvasObject, model TableModel, row, col int) {
	entry, ok := editor.(*cellEntry)
	if !ok {
		return
	}
	entry.SetText(displayText(model.Data(row, col, EditRole)))
}

func (TextDelegate) SetModelData(editor fyne.CanvasObject, model TableModel, row, col int) {
	entry, ok := editor.(*cellEntry)
	if !ok {
		return
	}
	v, err := strconv.Atoi(strings.TrimSpace(entry.Text))
	if err != nil {
		log.Printf("warning: cell (%d,%d): not an integer: %q", row, col, entry.Text)
		return
	}
	model.SetData(row, col, v, EditRole)
}

func (TextDelegate) UpdateEditorGeometry(editor fyne.CanvasObject, pos fyne.Position, size fyne.Size) {
	editor.Move(pos)
	editor.Resize(size)
}
