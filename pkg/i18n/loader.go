package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// WithYAMLDir loads every {lang}.yaml (or .yml) file at the root of fsys.
//
//	en.yaml
//	es.yaml
func WithYAMLDir(fsys fs.FS) Option {
	return func(b *Bundle) error {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return fmt.Errorf("read translations: %w", err)
		}
		for _, e := range entries {
			ext := strings.ToLower(path.Ext(e.Name()))
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}

			data, err := fs.ReadFile(fsys, e.Name())
			if err != nil {
				return fmt.Errorf("read %q: %w", e.Name(), err)
			}
			var messages map[string]any
			if err := yaml.Unmarshal(data, &messages); err != nil {
				return fmt.Errorf("%w: %q: %s", ErrInvalidFile, e.Name(), err)
			}
			b.add(strings.TrimSuffix(e.Name(), path.Ext(e.Name())), messages)
		}
		return nil
	}
}
