package view

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in templates so callers can copy or extend them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	templates fs.FS
	globals   map[string]any
}

// WithFS replaces the embedded templates.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithGlobals seeds values available to every template (site name, asset
// base URL and so on).
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// Engine renders named templates.
type Engine struct {
	mu  sync.Mutex
	set *pongo2.TemplateSet
}

// New constructs an Engine backed by the embedded templates unless WithFS is
// given.
func New(options ...Option) (*Engine, error) {
	cfg := &config{templates: TemplatesFS(), globals: make(map[string]any)}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	set := pongo2.NewSet("storefront", pongo2.NewFSLoader(cfg.templates))
	if len(cfg.globals) > 0 {
		if set.Globals == nil {
			set.Globals = make(pongo2.Context)
		}
		set.Globals.Update(pongo2.Context(cfg.globals))
	}
	return &Engine{set: set}, nil
}

// Render executes the template name (".tpl" is appended when missing) and
// writes the result to out, if given.
func (e *Engine) Render(name string, data map[string]any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("view: engine is nil")
	}
	path := strings.TrimSpace(name)
	if !strings.HasSuffix(path, ".tpl") {
		path += ".tpl"
	}

	e.mu.Lock()
	tmpl, err := e.set.FromCache(path)
	e.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("view: load template %q: %w", path, err)
	}

	rendered, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("view: execute template %q: %w", path, err)
	}
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", err
		}
	}
	return rendered, nil
}
