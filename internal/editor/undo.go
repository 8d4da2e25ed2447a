package editor

// UndoStack records added shapes in insertion order. It only tracks
// additions; there is no redo.
type UndoStack struct {
	items []*Shape
}

func (u *UndoStack) Push(sh *Shape) { u.items = append(u.items, sh) }

// Pop removes and returns the most recent shape, or nil when empty.
func (u *UndoStack) Pop() *Shape {
	if len(u.items) == 0 {
		return nil
	}
	sh := u.items[len(u.items)-1]
	u.items[len(u.items)-1] = nil
	u.items = u.items[:len(u.items)-1]
	return sh
}

func (u *UndoStack) Len() int { return len(u.items) }

// Items returns the stack bottom to top. The slice is a copy.
func (u *UndoStack) Items() []*Shape {
	out := make([]*Shape, len(u.items))
	copy(out, u.items)
	return out
}

func (u *UndoStack) remove(sh *Shape) {
	for i, v := range u.items {
		if v == sh {
			u.items = append(u.items[:i], u.items[i+1:]...)
			return
		}
	}
}
