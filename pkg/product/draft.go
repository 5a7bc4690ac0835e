package product

import (
	"github.com/goliatone/go-storefront/pkg/formdef"
	"github.com/goliatone/go-storefront/pkg/group"
)

// Group names, also used as payload prefixes and error paths.
const (
	GroupDetails        = "details"
	GroupSpecifications = "specifications"
	GroupColors         = "colors"
	GroupSizes          = "sizes"
	GroupGallery        = "gallery"
)

// Draft is the live state of one product form.
type Draft struct {
	Details        *group.Store[Details]
	Specifications *group.Store[Specification]
	Colors         *group.Store[Color]
	Sizes          *group.Store[Size]
	Gallery        *group.Store[GalleryImage]
}

// NewDraft opens a form for vendor. Every tab starts with one blank row, the
// way the form renders on mount. Options apply to every store.
func NewDraft(vendor string, opts ...group.Option) *Draft {
	with := func(name string) []group.Option {
		out := make([]group.Option, 0, len(opts)+2)
		out = append(out, opts...)
		return append(out, group.WithName(name), group.WithInitial(1))
	}

	d := &Draft{
		Details:        group.NewStore(func() Details { return Details{Vendor: vendor} }, with(GroupDetails)...),
		Specifications: group.NewStore(func() Specification { return Specification{} }, with(GroupSpecifications)...),
		Colors:         group.NewStore(func() Color { return Color{} }, with(GroupColors)...),
		Sizes:          group.NewStore(func() Size { return Size{} }, with(GroupSizes)...),
		Gallery:        group.NewStore(func() GalleryImage { return GalleryImage{} }, with(GroupGallery)...),
	}
	return d
}

// SetDetail updates one top-level field.
func (d *Draft) SetDetail(field, value string) {
	d.Details.UpdateField(0, field, value)
}

// Wait blocks until every pending image read in the draft has landed.
func (d *Draft) Wait() {
	d.Details.Wait()
	d.Specifications.Wait()
	d.Colors.Wait()
	d.Sizes.Wait()
	d.Gallery.Wait()
}

// Snapshot captures the current state of every tab.
func (d *Draft) Snapshot() Snapshot {
	details, _ := d.Details.Snapshot().At(0)
	return Snapshot{
		Details:        details,
		Specifications: d.Specifications.Snapshot(),
		Colors:         d.Colors.Snapshot(),
		Sizes:          d.Sizes.Snapshot(),
		Gallery:        d.Gallery.Snapshot(),
	}
}

// Snapshot is an immutable view of a Draft.
type Snapshot struct {
	Details        Details
	Specifications group.Group[Specification]
	Colors         group.Group[Color]
	Sizes          group.Group[Size]
	Gallery        group.Group[GalleryImage]
}

// Definitions describes the repeated tabs: labels, fields and which tab
// carries images.
var Definitions = formdef.Defaults()

// GroupFields lists the text fields of each repeated tab in form order.
var GroupFields = groupFields(Definitions)

func groupFields(defs *formdef.Store) map[string][]string {
	out := make(map[string][]string, len(GroupNames))
	for _, name := range GroupNames {
		def, _ := defs.Get(name)
		out[name] = def.FieldNames()
	}
	return out
}

// Definition returns the definition of a repeated tab.
func Definition(name string) formdef.Definition {
	def, ok := Definitions.Get(name)
	if !ok {
		return formdef.Definition{Name: name, Label: formdef.Label(name)}
	}
	return def
}

// FieldLabel returns the label of field within the named tab.
func FieldLabel(groupName, field string) string {
	for _, f := range Definition(groupName).Fields {
		if f.Name == field {
			return f.Label
		}
	}
	return formdef.Label(field)
}

// GroupNames lists the repeated tabs in form order.
var GroupNames = []string{GroupGallery, GroupSpecifications, GroupSizes, GroupColors}
