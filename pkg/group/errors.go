package group

import "fmt"

// ReadError reports a SetImage read that did not complete.
type ReadError struct {
	Group string
	ID    ID
	File  string
	Err   error
}

func (e *ReadError) Error() string {
	if e == nil {
		return "group: read error"
	}
	if e.Group != "" {
		return fmt.Sprintf("group %s: read %q for record %d: %v", e.Group, e.File, e.ID, e.Err)
	}
	return fmt.Sprintf("group: read %q for record %d: %v", e.File, e.ID, e.Err)
}

func (e *ReadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
