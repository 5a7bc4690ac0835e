package product

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/goliatone/go-storefront/pkg/group"
	"github.com/goliatone/go-storefront/pkg/preview"
)

// payloadKeys maps form field names onto the keys the product API expects.
var payloadKeys = []struct {
	field string
	key   string
}{
	{FieldName, "title"},
	{FieldDescription, "description"},
	{FieldCategory, "category"},
	{FieldPrice, "price"},
	{FieldOldPrice, "old_price"},
	{FieldShippingAmount, "shipping_amount"},
	{FieldStockQty, "stock_qty"},
	{FieldVendor, "vendor"},
}

// Payload is an encoded multipart/form-data submission.
type Payload struct {
	ContentType string
	Body        []byte

	// positions[group][i] is the group index of the i-th submitted record.
	positions map[string][]int
}

// Reader returns a fresh reader over the body.
func (p *Payload) Reader() io.Reader {
	if p == nil {
		return bytes.NewReader(nil)
	}
	return bytes.NewReader(p.Body)
}

// Submitted reports how many records of name were included.
func (p *Payload) Submitted(name string) int {
	if p == nil {
		return 0
	}
	return len(p.positions[name])
}

// GroupIndex translates the position of a submitted record back to its index
// in the form. Blank rows are not submitted, so the two can differ.
func (p *Payload) GroupIndex(name string, submitted int) (int, bool) {
	if p == nil {
		return 0, false
	}
	positions := p.positions[name]
	if submitted < 0 || submitted >= len(positions) {
		return 0, false
	}
	return positions[submitted], true
}

// RemapPath rewrites a dotted error path such as "specifications.0.title" so
// its index points at the form row. The API names the product title "title";
// that is mapped back to the form's "name" field.
func (p *Payload) RemapPath(path string) string {
	segments := strings.Split(path, ".")
	if len(segments) == 1 {
		if segments[0] == "title" {
			return FieldName
		}
		return path
	}
	if len(segments) >= 2 {
		if idx, err := strconv.Atoi(segments[1]); err == nil {
			if formIdx, ok := p.GroupIndex(segments[0], idx); ok {
				segments[1] = strconv.Itoa(formIdx)
			}
		}
	}
	return strings.Join(segments, ".")
}

// Payload encodes the snapshot. Rows whose fields are all blank and that have
// no image are skipped; submitted rows are renumbered from zero.
func (s Snapshot) Payload() (*Payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	payload := &Payload{positions: make(map[string][]int)}

	for _, entry := range payloadKeys {
		value := s.Details.Field(entry.field)
		if entry.field == FieldDescription {
			value = SanitizeDescription(value)
		}
		if err := w.WriteField(entry.key, value); err != nil {
			return nil, fmt.Errorf("product: write %s: %w", entry.key, err)
		}
	}
	if err := writeImage(w, FieldImage, s.Details.Image); err != nil {
		return nil, err
	}

	if err := writeGroup(w, payload, GroupSpecifications, s.Specifications); err != nil {
		return nil, err
	}
	if err := writeGroup(w, payload, GroupColors, s.Colors); err != nil {
		return nil, err
	}
	if err := writeGroup(w, payload, GroupSizes, s.Sizes); err != nil {
		return nil, err
	}
	if err := writeGroup(w, payload, GroupGallery, s.Gallery); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("product: close payload: %w", err)
	}
	payload.ContentType = w.FormDataContentType()
	payload.Body = buf.Bytes()
	return payload, nil
}

func writeGroup[R group.Shape[R]](w *multipart.Writer, payload *Payload, name string, g group.Group[R]) error {
	fields := GroupFields[name]
	submitted := 0
	for i, record := range g.Records() {
		if blankRecord(record, fields) {
			continue
		}
		for _, field := range fields {
			key := fmt.Sprintf("%s[%d][%s]", name, submitted, field)
			if err := w.WriteField(key, record.Field(field)); err != nil {
				return fmt.Errorf("product: write %s: %w", key, err)
			}
		}
		key := fmt.Sprintf("%s[%d][%s]", name, submitted, FieldImage)
		if err := writeImage(w, key, record.ImageRef()); err != nil {
			return err
		}
		payload.positions[name] = append(payload.positions[name], i)
		submitted++
	}
	return nil
}

func blankRecord[R group.Shape[R]](record R, fields []string) bool {
	if record.ImageRef() != nil {
		return false
	}
	for _, field := range fields {
		if strings.TrimSpace(record.Field(field)) != "" {
			return false
		}
	}
	return true
}

func writeImage(w *multipart.Writer, key string, img *preview.Image) error {
	if img == nil || img.File == nil {
		return nil
	}

	src, err := img.File.Open()
	if err != nil {
		return fmt.Errorf("product: open %s: %w", img.Name(), err)
	}
	defer func() { _ = src.Close() }()

	mediaType := img.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, key, img.Name()))
	header.Set("Content-Type", mediaType)

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("product: create part %s: %w", key, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("product: copy %s: %w", img.Name(), err)
	}
	return nil
}

// FieldPaths lists the dotted paths the API may attach errors to for this
// payload, in payload numbering.
func (p *Payload) FieldPaths() []string {
	paths := make([]string, 0, len(payloadKeys)+1)
	for _, entry := range payloadKeys {
		paths = append(paths, entry.key)
	}
	paths = append(paths, FieldImage)
	if p == nil {
		return paths
	}
	for _, name := range GroupNames {
		paths = append(paths, name)
		for i := range p.positions[name] {
			prefix := name + "." + strconv.Itoa(i)
			paths = append(paths, prefix)
			for _, field := range GroupFields[name] {
				paths = append(paths, prefix+"."+field)
			}
			paths = append(paths, prefix+"."+FieldImage)
		}
	}
	return paths
}
