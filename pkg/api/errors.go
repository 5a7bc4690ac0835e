package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrBaseURL is returned when the client is built without a usable URL.
	ErrBaseURL = errors.New("api: base url is required")
	// ErrPasswordMismatch is returned when the confirmation does not match.
	ErrPasswordMismatch = errors.New("api: passwords do not match")
)

// Error is a non-2xx API response.
type Error struct {
	Status    int
	RequestID string
	// Fields holds messages keyed by dotted form path.
	Fields map[string][]string
	// Form holds messages that could not be tied to a field.
	Form []string
}

func (e *Error) Error() string {
	if e == nil {
		return "api: error"
	}
	var parts []string
	parts = append(parts, e.Form...)
	for _, path := range e.Paths() {
		for _, msg := range e.Fields[path] {
			parts = append(parts, path+": "+msg)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, http.StatusText(e.Status), strings.Join(parts, "; "))
}

// Paths returns the field paths with messages, sorted.
func (e *Error) Paths() []string {
	if e == nil {
		return nil
	}
	paths := make([]string, 0, len(e.Fields))
	for path := range e.Fields {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// FieldErrors returns the messages for path.
func (e *Error) FieldErrors(path string) []string {
	if e == nil {
		return nil
	}
	return e.Fields[path]
}

// AsError unwraps err into *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr, true
	}
	return nil, false
}

// ErrorMapping splits an API error payload into field-level and form-level
// messages keyed by dotted path.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// FlattenErrorBody turns a validation body such as
// {"price": ["required"], "sizes": [{}, {"name": ["blank"]}], "non_field_errors": [...]}
// into dotted paths ("sizes.1.name"). Bodies that are not JSON objects become
// a single form-level entry.
func FlattenErrorBody(body []byte) map[string][]string {
	out := make(map[string][]string)
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return out
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		out[""] = []string{trimmed}
		return out
	}
	flattenInto(out, "", decoded)
	return out
}

func flattenInto(dest map[string][]string, prefix string, value any) {
	switch typed := value.(type) {
	case nil:
		return
	case string:
		dest[prefix] = append(dest[prefix], typed)
	case []any:
		for i, item := range typed {
			switch item.(type) {
			case map[string]any, []any:
				flattenInto(dest, joinPath(prefix, strconv.Itoa(i)), item)
			default:
				flattenInto(dest, prefix, item)
			}
		}
	case map[string]any:
		for key, nested := range typed {
			flattenInto(dest, joinPath(prefix, key), nested)
		}
	default:
		dest[prefix] = append(dest[prefix], fmt.Sprint(typed))
	}
}

// MapErrors normalises flattened messages onto known field paths. Paths the
// form does not know about are treated as form-level so messages are not lost.
func MapErrors(known []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		return mapping
	}

	fieldPaths := make(map[string]struct{}, len(known))
	for _, path := range known {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			fieldPaths[trimmed] = struct{}{}
		}
	}

	raw := make([]string, 0, len(payload))
	for path := range payload {
		raw = append(raw, path)
	}
	sort.Strings(raw)

	for _, rawPath := range raw {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		mapped, formLevel := mapErrorPath(rawPath, fieldPaths)
		if formLevel || mapped == "" {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[mapped] = append(mapping.Fields[mapped], messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, fieldPaths map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", true
	}
	segments := splitPath(raw)
	if len(segments) == 0 {
		return "", true
	}

	// "data.sizes.0.name" still points at sizes.0.name.
	for _, candidate := range [][]string{segments, dropWrapperSegments(segments)} {
		for end := len(candidate); end > 0; end-- {
			path := strings.Join(candidate[:end], ".")
			if _, ok := fieldPaths[path]; ok {
				return path, false
			}
		}
	}
	return "", true
}

func splitPath(path string) []string {
	clean := strings.NewReplacer("[", ".", "]", "", "/", ".").Replace(strings.TrimSpace(path))
	parts := strings.FieldsFunc(clean, func(r rune) bool { return r == '.' })
	out := parts[:0]
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func joinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	if child == "" {
		return parent
	}
	return parent + "." + child
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "detail", "message", "error", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
