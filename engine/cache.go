package engine

import (
	"io/fs"
	"sync"
	"text/template"
)

// TemplateCache parses templates from one filesystem at most once.
type TemplateCache struct {
	fsys      fs.FS
	funcs     template.FuncMap
	mu        sync.RWMutex
	templates map[string]*template.Template
}

func NewTemplateCache(fsys fs.FS, funcs template.FuncMap) *TemplateCache {
	return &TemplateCache{
		fsys:      fsys,
		funcs:     funcs,
		templates: make(map[string]*template.Template),
	}
}

func (c *TemplateCache) Get(path string) (*template.Template, error) {
	c.mu.RLock()
	if tmpl, exists := c.templates[path]; exists {
		c.mu.RUnlock()
		return tmpl, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if tmpl, exists := c.templates[path]; exists {
		return tmpl, nil
	}

	content, err := fs.ReadFile(c.fsys, path)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(path).Funcs(c.funcs).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, err
	}

	c.templates[path] = tmpl
	return tmpl, nil
}
