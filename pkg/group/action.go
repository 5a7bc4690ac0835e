package group

import "github.com/goliatone/go-storefront/pkg/preview"

// Op names a group mutation.
type Op string

const (
	OpAppend      Op = "append"
	OpRemove      Op = "remove"
	OpUpdateField Op = "update_field"
	OpSetImage    Op = "set_image"
	OpClearImage  Op = "clear_image"
)

// Action describes one mutation. Records are addressed by Index unless ID is
// non-zero, in which case ID wins.
type Action struct {
	Op    Op
	Index int
	ID    ID
	Field string
	Value string
	Image *preview.Image
}

// Append returns an action that adds one blank record.
func Append() Action {
	return Action{Op: OpAppend}
}

// RemoveAt returns an action that deletes the record at index.
func RemoveAt(index int) Action {
	return Action{Op: OpRemove, Index: index}
}

// RemoveByID returns an action that deletes the record with id.
func RemoveByID(id ID) Action {
	return Action{Op: OpRemove, ID: id}
}

// UpdateField returns an action that sets one field at index.
func UpdateField(index int, field, value string) Action {
	return Action{Op: OpUpdateField, Index: index, Field: field, Value: value}
}

// UpdateFieldByID returns an action that sets one field on the record with id.
func UpdateFieldByID(id ID, field, value string) Action {
	return Action{Op: OpUpdateField, ID: id, Field: field, Value: value}
}

// SetImage returns an action that stores a finished preview at index.
func SetImage(index int, img *preview.Image) Action {
	return Action{Op: OpSetImage, Index: index, Image: img}
}

// SetImageByID returns an action that stores a finished preview on id.
func SetImageByID(id ID, img *preview.Image) Action {
	return Action{Op: OpSetImage, ID: id, Image: img}
}

// ClearImage returns an action that drops the image at index.
func ClearImage(index int) Action {
	return Action{Op: OpClearImage, Index: index}
}

// Reduce applies a to g and returns the resulting group. Unknown ops and
// actions that address a missing record return g unchanged.
func Reduce[R Shape[R]](g Group[R], a Action) Group[R] {
	index := a.Index
	if a.ID != 0 {
		index = g.IndexOf(a.ID)
	}

	switch a.Op {
	case OpAppend:
		return g.Append()
	case OpRemove:
		return g.RemoveAt(index)
	case OpUpdateField:
		return g.UpdateField(index, a.Field, a.Value)
	case OpSetImage:
		return g.SetImage(index, a.Image)
	case OpClearImage:
		return g.SetImage(index, nil)
	default:
		return g
	}
}
