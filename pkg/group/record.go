package group

import (
	"sort"

	"github.com/goliatone/go-storefront/pkg/preview"
)

// Shape is the constraint every record type satisfies. Implementations are
// value types: With* methods return an updated copy and leave the receiver
// untouched.
type Shape[R any] interface {
	Field(name string) string
	WithField(name, value string) R
	ImageRef() *preview.Image
	WithImageRef(img *preview.Image) R
}

// Fields is a map-backed record for groups whose field set is only known at
// runtime (for example, groups built from a formdef.Definition).
type Fields struct {
	Values map[string]string
	Image  *preview.Image
}

var _ Shape[Fields] = Fields{}

// NewFields returns a record with every name present and empty.
func NewFields(names ...string) Fields {
	values := make(map[string]string, len(names))
	for _, name := range names {
		values[name] = ""
	}
	return Fields{Values: values}
}

// Field returns the value stored under name.
func (f Fields) Field(name string) string {
	return f.Values[name]
}

// WithField returns a copy with name set to value.
func (f Fields) WithField(name, value string) Fields {
	values := make(map[string]string, len(f.Values)+1)
	for k, v := range f.Values {
		values[k] = v
	}
	values[name] = value
	return Fields{Values: values, Image: f.Image}
}

// ImageRef returns the attached image, if any.
func (f Fields) ImageRef() *preview.Image {
	return f.Image
}

// WithImageRef returns a copy with the image replaced. Nil clears it.
func (f Fields) WithImageRef(img *preview.Image) Fields {
	return Fields{Values: f.Values, Image: img}
}

// Names returns the field names in sorted order.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f.Values))
	for name := range f.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether every field is blank and no image is attached.
func (f Fields) Empty() bool {
	if f.Image != nil {
		return false
	}
	for _, v := range f.Values {
		if v != "" {
			return false
		}
	}
	return true
}
