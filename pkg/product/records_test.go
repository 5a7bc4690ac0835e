package product_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-storefront/pkg/group"
	"github.com/goliatone/go-storefront/pkg/preview"
	"github.com/goliatone/go-storefront/pkg/product"
)

func TestTypedRecordsUpdateOnlyKnownFields(t *testing.T) {
	g := group.New(func() product.Size { return product.Size{} }, product.Size{Name: "M", Price: "10"})

	g = g.UpdateField(0, product.FieldPrice, "12").UpdateField(0, "weight", "2kg")

	if diff := cmp.Diff([]product.Size{{Name: "M", Price: "12"}}, g.Records()); diff != "" {
		t.Fatalf("sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordsWithoutImageSlotIgnoreImages(t *testing.T) {
	img := &preview.Image{Preview: "data:image/png;base64,AA=="}

	spec := product.Specification{Title: "Fit"}.WithImageRef(img)
	if spec.ImageRef() != nil {
		t.Fatalf("specifications carry no image")
	}
	color := product.Color{Name: "Red"}.WithImageRef(img)
	if color.ImageRef() != nil {
		t.Fatalf("colors carry no image")
	}

	slot := product.GalleryImage{}.WithImageRef(img)
	if slot.ImageRef() != img {
		t.Fatalf("gallery slot should hold the image")
	}
}

func TestDetailsFieldRoundTrip(t *testing.T) {
	var d product.Details
	for i, field := range product.DetailFields {
		d = d.WithField(field, string(rune('a'+i)))
	}
	for i, field := range product.DetailFields {
		if got := d.Field(field); got != string(rune('a'+i)) {
			t.Fatalf("field %s = %q", field, got)
		}
	}
	if d.Field("unknown") != "" {
		t.Fatalf("unknown fields read as empty")
	}
}

func roundTrips[R group.Shape[R]](t *testing.T, name string, blank R, fields []string) {
	t.Helper()
	for _, field := range fields {
		if got := blank.WithField(field, "x").Field(field); got != "x" {
			t.Errorf("%s: field %q is defined but not stored by the record type", name, field)
		}
	}
}

func TestDefinitionsMatchRecordTypes(t *testing.T) {
	roundTrips(t, product.GroupSpecifications, product.Specification{}, product.GroupFields[product.GroupSpecifications])
	roundTrips(t, product.GroupColors, product.Color{}, product.GroupFields[product.GroupColors])
	roundTrips(t, product.GroupSizes, product.Size{}, product.GroupFields[product.GroupSizes])

	want := map[string][]string{
		product.GroupSpecifications: {product.FieldTitle, product.FieldContent},
		product.GroupColors:         {product.FieldName, product.FieldColorCode},
		product.GroupSizes:          {product.FieldName, product.FieldPrice},
		product.GroupGallery:        {},
	}
	if diff := cmp.Diff(want, product.GroupFields); diff != "" {
		t.Fatalf("group fields mismatch (-want +got):\n%s", diff)
	}

	for _, name := range product.GroupNames {
		if got := product.Definition(name).Image; got != (name == product.GroupGallery) {
			t.Fatalf("%s: unexpected image flag %v", name, got)
		}
	}
	if got := product.FieldLabel(product.GroupSizes, product.FieldName); got != "Size" {
		t.Fatalf("expected sizes name label from the definition, got %q", got)
	}
}
