package definition

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store holds loaded forms keyed by id.
type Store struct {
	forms map[string]Form
}

// NewStore returns a store holding forms. Each form is validated.
func NewStore(forms ...Form) (*Store, error) {
	store := &Store{forms: make(map[string]Form, len(forms))}
	for _, form := range forms {
		if err := store.Add(form); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks fsys and parses every JSON/YAML document. A nil fsys yields an
// empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
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
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		return store.addDocument(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single document from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	store := &Store{forms: make(map[string]Form)}
	if err := store.addDocument(data, path); err != nil {
		return nil, err
	}
	return store, nil
}

// Add registers a form. Duplicate ids are rejected.
func (s *Store) Add(form Form) error {
	form.ID = strings.TrimSpace(form.ID)
	if err := form.Validate(); err != nil {
		return err
	}
	if _, exists := s.forms[form.ID]; exists {
		return fmt.Errorf("definition: duplicate form %q", form.ID)
	}
	s.forms[form.ID] = form.Clone()
	return nil
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[strings.TrimSpace(id)]
	if !ok {
		return Form{}, false
	}
	return form.Clone(), true
}

// Definition resolves a form for the orchestrator, returning ErrFormNotFound
// for unknown ids.
func (s *Store) Definition(ctx context.Context, id string) (Form, error) {
	if err := ctx.Err(); err != nil {
		return Form{}, err
	}
	form, ok := s.Form(id)
	if !ok {
		return Form{}, fmt.Errorf("%w: %q", ErrFormNotFound, id)
	}
	return form, nil
}

// IDs lists form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

type documentFile struct {
	Forms map[string]Form `json:"forms" yaml:"forms"`
}

func (s *Store) addDocument(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for id, form := range doc.Forms {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			return fmt.Errorf("definition: file %s defines an empty form id", source)
		}
		form.ID = trimmed
		form.Source = source
		if err := s.Add(form); err != nil {
			return fmt.Errorf("%w (file %s)", err, source)
		}
	}
	return nil
}

// EncodeYAML writes forms as a definition document readable by LoadFS.
func EncodeYAML(forms ...Form) ([]byte, error) {
	doc := documentFile{Forms: make(map[string]Form, len(forms))}
	for _, form := range forms {
		if err := form.Validate(); err != nil {
			return nil, err
		}
		if _, exists := doc.Forms[form.ID]; exists {
			return nil, fmt.Errorf("definition: duplicate form %q", form.ID)
		}
		doc.Forms[form.ID] = form
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("definition: encode: %w", err)
	}
	return out, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("definition: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("definition: parse %s: %w", source, err)
	}
	return doc, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
