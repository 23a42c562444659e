package main

import (
	"github.com/ebitenui/ebitenui/widget"
)

// listPanel wraps a widget.List whose entries are rebuilt from editor
// state. Programmatic updates are flagged so selection handlers can tell
// them apart from user clicks.
type listPanel struct {
	list           *widget.List
	entries        []any
	suppressEvents bool
}

func (lp *listPanel) SetEntries(entries []any) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	lp.entries = entries
	lp.list.SetEntries(entries)
	lp.suppressEvents = false
}

func (lp *listPanel) SetSelected(idx int) {
	if lp == nil || lp.list == nil {
		return
	}
	lp.suppressEvents = true
	defer func() { lp.suppressEvents = false }()
	if idx < 0 || idx >= len(lp.entries) {
		lp.list.SetSelectedEntry(nil)
		return
	}
	lp.list.SetSelectedEntry(lp.entries[idx])
}
