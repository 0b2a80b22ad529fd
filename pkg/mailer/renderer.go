package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns markdown templates into HTML wrapped in a layout.
// Templates live at the root of the filesystem, layouts under "layouts/".
type Renderer struct {
	fsys fs.FS
	md   goldmark.Markdown

	mu        sync.RWMutex
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
}

type parsedTemplate struct {
	metadata map[string]any
	body     *texttemplate.Template
}

// Result is a rendered email body.
type Result struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// NewRenderer creates a renderer reading templates from fsys.
func NewRenderer(fsys fs.FS) *Renderer {
	return &Renderer{
		fsys:      fsys,
		md:        goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
	}
}

// Render executes the named template with data, converts it to HTML and
// wraps it in layout. Text is the executed markdown.
func (r *Renderer) Render(layout, name string, data any) (*Result, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var md bytes.Buffer
	if err := tmpl.body.Execute(&md, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(md.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := lt.Execute(&out, map[string]any{
		"Content":  template.HTML(content.String()), //nolint:gosec // goldmark drops raw HTML
		"Metadata": tmpl.metadata,
	}); err != nil {
		return nil, fmt.Errorf("%w: layout %s: %w", ErrRenderFailed, layout, err)
	}

	return &Result{Metadata: tmpl.metadata, HTML: out.String(), Text: md.String()}, nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTemplateNotFound, name, err)
	}
	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}
	body, err := texttemplate.New(name).Option("missingkey=zero").Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}

	t = &parsedTemplate{metadata: parsed.Metadata, body: body}
	r.mu.Lock()
	r.templates[name] = t
	r.mu.Unlock()
	return t, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	t, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	content, err := fs.ReadFile(r.fsys, path.Join("layouts", name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLayoutNotFound, name, err)
	}
	t, err = template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}

	r.mu.Lock()
	r.layouts[name] = t
	r.mu.Unlock()
	return t, nil
}
