package model

const defaultMaxDepth = 50

// Snapshot captures a production input at a point in time.
type Snapshot struct {
	Production ProductionInput `json:"production" yaml:"production"`
	Label      string          `json:"label" yaml:"label"` // Human-readable description (e.g. "capacity Labor hours=260")
}

// History manages undo/redo stacks of production snapshots. The zero value
// is usable and falls back to the default depth.
type History struct {
	UndoStack []Snapshot `json:"undo" yaml:"undo"`
	RedoStack []Snapshot `json:"redo" yaml:"redo"`
	MaxDepth  int        `json:"max_depth" yaml:"max_depth"`
}

// NewHistory creates a History with the default max depth of 50.
func NewHistory() History {
	return History{
		MaxDepth: defaultMaxDepth,
	}
}

func (h *History) depth() int {
	if h.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return h.MaxDepth
}

// Push saves a snapshot onto the undo stack and clears the redo stack.
// This should be called before the modification is applied.
func (h *History) Push(s Snapshot) {
	h.UndoStack = append(h.UndoStack, s)
	if limit := h.depth(); len(h.UndoStack) > limit {
		h.UndoStack = h.UndoStack[len(h.UndoStack)-limit:]
	}
	h.RedoStack = nil
}

// Undo pops the most recent snapshot from the undo stack and pushes
// the current state onto the redo stack.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.UndoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.UndoStack[len(h.UndoStack)-1]
	h.UndoStack = h.UndoStack[:len(h.UndoStack)-1]
	h.RedoStack = append(h.RedoStack, current)
	return last, true
}

// Redo pops the most recent snapshot from the redo stack and pushes
// the current state onto the undo stack.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.RedoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.RedoStack[len(h.RedoStack)-1]
	h.RedoStack = h.RedoStack[:len(h.RedoStack)-1]
	h.UndoStack = append(h.UndoStack, current)
	return last, true
}

// CanUndo returns true if there is at least one snapshot to undo.
func (h *History) CanUndo() bool {
	return len(h.UndoStack) > 0
}

// CanRedo returns true if there is at least one snapshot to redo.
func (h *History) CanRedo() bool {
	return len(h.RedoStack) > 0
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.UndoStack = nil
	h.RedoStack = nil
}

// MakeSnapshot creates a snapshot holding a deep copy of the input.
func MakeSnapshot(production ProductionInput, label string) Snapshot {
	return Snapshot{
		Production: production.Clone(),
		Label:      label,
	}
}
