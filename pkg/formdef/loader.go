package formdef

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Groups []Definition `json:"groups" yaml:"groups"`
}

// LoadFS walks fsys and parses every .json/.yaml/.yml file as a list of group
// definitions. A nil fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{defs: make(map[string]Definition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for _, raw := range doc.Groups {
			def, err := normaliseDefinition(raw, path)
			if err != nil {
				return err
			}
			if _, exists := store.defs[def.Name]; exists {
				return fmt.Errorf("formdef: duplicate group %q (file %s)", def.Name, path)
			}
			store.defs[def.Name] = def
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("formdef: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("formdef: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseDefinition(raw Definition, source string) (Definition, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Definition{}, fmt.Errorf("formdef: file %s defines a group without a name", source)
	}
	def := Definition{
		Name:  name,
		Label: strings.TrimSpace(raw.Label),
		Image: raw.Image,
	}
	if def.Label == "" {
		def.Label = Label(name)
	}

	seen := make(map[string]struct{}, len(raw.Fields))
	for _, field := range raw.Fields {
		fieldName := strings.TrimSpace(field.Name)
		if fieldName == "" {
			return Definition{}, fmt.Errorf("formdef: group %q (file %s) has a field without a name", name, source)
		}
		if _, dup := seen[fieldName]; dup {
			return Definition{}, fmt.Errorf("formdef: group %q (file %s) defines field %q twice", name, source, fieldName)
		}
		seen[fieldName] = struct{}{}

		label := strings.TrimSpace(field.Label)
		if label == "" {
			label = Label(fieldName)
		}
		kind := strings.TrimSpace(field.Type)
		if kind == "" {
			kind = "text"
		}
		def.Fields = append(def.Fields, FieldDef{Name: fieldName, Label: label, Type: kind})
	}
	if len(def.Fields) == 0 && !def.Image {
		return Definition{}, fmt.Errorf("formdef: group %q (file %s) has no fields", name, source)
	}
	return def, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
