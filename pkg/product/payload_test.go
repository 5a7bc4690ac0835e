package product_test

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-storefront/pkg/preview"
	"github.com/goliatone/go-storefront/pkg/product"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type part struct {
	value       string
	filename    string
	contentType string
}

func decodePayload(t *testing.T, payload *product.Payload) map[string]part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(payload.ContentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("expected multipart/form-data, got %q", mediaType)
	}

	reader := multipart.NewReader(payload.Reader(), params["boundary"])
	out := make(map[string]part)
	for {
		p, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("next part: %v", err)
		}
		data, err := io.ReadAll(p)
		if err != nil {
			t.Fatalf("read part: %v", err)
		}
		out[p.FormName()] = part{
			value:       string(data),
			filename:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
		}
	}
	return out
}

func TestDraftStartsWithOneBlankRowPerTab(t *testing.T) {
	draft := product.NewDraft("7")
	snap := draft.Snapshot()

	if snap.Details.Vendor != "7" {
		t.Fatalf("expected vendor 7, got %q", snap.Details.Vendor)
	}
	for name, n := range map[string]int{
		product.GroupSpecifications: snap.Specifications.Len(),
		product.GroupColors:         snap.Colors.Len(),
		product.GroupSizes:          snap.Sizes.Len(),
		product.GroupGallery:        snap.Gallery.Len(),
	} {
		if n != 1 {
			t.Fatalf("expected one blank %s row, got %d", name, n)
		}
	}
}

func TestPayloadEncodesDetailsAndGroups(t *testing.T) {
	draft := product.NewDraft("7")
	draft.SetDetail(product.FieldName, "Linen Shirt")
	draft.SetDetail(product.FieldDescription, `<p>Soft</p><script>alert(1)</script>`)
	draft.SetDetail(product.FieldCategory, "3")
	draft.SetDetail(product.FieldPrice, "25.00")
	draft.Details.SetImage(0, preview.BytesFile("thumb.png", pngBytes))

	draft.Specifications.UpdateField(0, product.FieldTitle, "Material")
	draft.Specifications.UpdateField(0, product.FieldContent, "Linen")

	// blank row 0, filled row 1
	draft.Colors.Append()
	draft.Colors.UpdateField(1, product.FieldName, "Blue")
	draft.Colors.UpdateField(1, product.FieldColorCode, "#00f")

	draft.Gallery.Append()
	draft.Gallery.SetImage(1, preview.BytesFile("side.png", pngBytes))
	draft.Wait()

	payload, err := draft.Snapshot().Payload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	parts := decodePayload(t, payload)

	values := map[string]string{}
	for name, p := range parts {
		if p.filename == "" {
			values[name] = p.value
		}
	}
	want := map[string]string{
		"title":                      "Linen Shirt",
		"description":                "<p>Soft</p>",
		"category":                   "3",
		"price":                      "25.00",
		"old_price":                  "",
		"shipping_amount":            "",
		"stock_qty":                  "",
		"vendor":                     "7",
		"specifications[0][title]":   "Material",
		"specifications[0][content]": "Linen",
		"colors[0][name]":            "Blue",
		"colors[0][color_code]":      "#00f",
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("payload values mismatch (-want +got):\n%s", diff)
	}

	thumb := parts["image"]
	if thumb.filename != "thumb.png" || thumb.contentType != "image/png" || thumb.value != string(pngBytes) {
		t.Fatalf("unexpected thumbnail part: %+v", thumb)
	}
	if gallery := parts["gallery[0][image]"]; gallery.filename != "side.png" {
		t.Fatalf("expected gallery image renumbered to 0, got %+v", parts)
	}

	if n := payload.Submitted(product.GroupSizes); n != 0 {
		t.Fatalf("expected blank sizes to be skipped, got %d", n)
	}
	if idx, ok := payload.GroupIndex(product.GroupColors, 0); !ok || idx != 1 {
		t.Fatalf("expected submitted color 0 to map to row 1, got %d %v", idx, ok)
	}
}

func TestPayloadRemapPath(t *testing.T) {
	draft := product.NewDraft("1")
	draft.Sizes.Append()
	draft.Sizes.Append()
	draft.Sizes.UpdateField(2, product.FieldName, "XL")

	payload, err := draft.Snapshot().Payload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}

	cases := map[string]string{
		"sizes.0.price": "sizes.2.price",
		"sizes.4.price": "sizes.4.price",
		"title":         "name",
		"price":         "price",
		"colors.0.name": "colors.0.name",
		"sizes":         "sizes",
	}
	for in, want := range cases {
		if got := payload.RemapPath(in); got != want {
			t.Fatalf("RemapPath(%q) = %q, want %q", in, got, want)
		}
	}

	paths := strings.Join(payload.FieldPaths(), ",")
	if !strings.Contains(paths, "sizes.0.price") || strings.Contains(paths, "sizes.1.price") {
		t.Fatalf("unexpected field paths: %s", paths)
	}
}

func TestSanitizeDescription(t *testing.T) {
	got := product.SanitizeDescription(`  <b>Bold</b> <a href="https://example.com">shop</a><img src=x onerror=alert(1)>  `)
	if strings.Contains(got, "onerror") || strings.Contains(got, "<script") {
		t.Fatalf("unsafe markup survived: %q", got)
	}
	if !strings.Contains(got, "<b>Bold</b>") {
		t.Fatalf("expected formatting to survive: %q", got)
	}
	if !strings.Contains(got, "nofollow") {
		t.Fatalf("expected nofollow on links: %q", got)
	}
	if product.SanitizeDescription("   ") != "" {
		t.Fatalf("expected blank description to stay blank")
	}
}
