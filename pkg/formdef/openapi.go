package formdef

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrOperationNotFound is returned when the document lacks the operation.
var ErrOperationNotFound = errors.New("formdef: operation not found")

var requestMediaTypes = []string{"multipart/form-data", "application/x-www-form-urlencoded", "application/json"}

// FromOpenAPI derives group definitions from the request body of operationID:
// every array property whose items are objects becomes a group. Binary item
// properties mark the group as carrying an image instead of a text field.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (*Store, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("formdef: load openapi document: %w", err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	store := &Store{defs: make(map[string]Definition)}
	body := requestSchema(op)
	if body == nil {
		return store, nil
	}

	for _, name := range sortedKeys(body.Properties) {
		prop := body.Properties[name]
		if prop == nil || prop.Value == nil || !prop.Value.Type.Is(openapi3.TypeArray) {
			continue
		}
		items := prop.Value.Items
		if items == nil || items.Value == nil || !items.Value.Type.Is(openapi3.TypeObject) {
			continue
		}
		store.defs[name] = definitionFromSchema(name, prop.Value, items.Value)
	}
	return store, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		mt := content.Get(mediaType)
		if mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func definitionFromSchema(name string, array, item *openapi3.Schema) Definition {
	def := Definition{Name: name, Label: array.Title}
	if def.Label == "" {
		def.Label = Label(name)
	}
	for _, fieldName := range sortedKeys(item.Properties) {
		ref := item.Properties[fieldName]
		if ref == nil || ref.Value == nil {
			continue
		}
		schema := ref.Value
		if schema.Format == "binary" {
			def.Image = true
			continue
		}
		label := schema.Title
		if label == "" {
			label = Label(fieldName)
		}
		kind := "text"
		if schema.Type.Is(openapi3.TypeNumber) || schema.Type.Is(openapi3.TypeInteger) {
			kind = "number"
		}
		def.Fields = append(def.Fields, FieldDef{Name: fieldName, Label: label, Type: kind})
	}
	return def
}

func sortedKeys(schemas openapi3.Schemas) []string {
	keys := make([]string, 0, len(schemas))
	for key := range schemas {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
