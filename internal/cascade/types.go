package cascade

import (
	"fmt"

	"github.com/eugenenazirov/vconsole-setup/internal/envfile"
)

// Field identifies one resolvable console setting.
type Field int

const (
	Keymap Field = iota + 1
	KeymapToggle
	Font
	FontMap
	FontUnimap
	// Unicode is only read from legacy Gentoo configuration and never defaulted.
	Unicode
)

func (f Field) String() string {
	switch f {
	case Keymap:
		return "keymap"
	case KeymapToggle:
		return "keymap_toggle"
	case Font:
		return "font"
	case FontMap:
		return "font_map"
	case FontUnimap:
		return "font_unimap"
	case Unicode:
		return "unicode"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Fields lists every field in declaration order.
func Fields() []Field {
	return []Field{Keymap, KeymapToggle, Font, FontMap, FontUnimap, Unicode}
}

// Settings holds the resolved values. An empty string means unset.
type Settings struct {
	Keymap       string
	KeymapToggle string
	Font         string
	FontMap      string
	FontUnimap   string
	Unicode      string
}

// Get returns the value of f.
func (s *Settings) Get(f Field) string {
	if p := s.slot(f); p != nil {
		return *p
	}
	return ""
}

// setIfEmpty assigns value to f unless f already holds a value.
// It reports whether the assignment happened.
func (s *Settings) setIfEmpty(f Field, value string) bool {
	p := s.slot(f)
	if p == nil || *p != "" || value == "" {
		return false
	}
	*p = value
	return true
}

// Any reports whether at least one field is set.
func (s *Settings) Any() bool {
	for _, f := range Fields() {
		if s.Get(f) != "" {
			return true
		}
	}
	return false
}

// WithDefaults fills keymap and font when nothing provided them.
func (s Settings) WithDefaults(keymap, font string) Settings {
	s.setIfEmpty(Keymap, keymap)
	s.setIfEmpty(Font, font)
	return s
}

func (s *Settings) slot(f Field) *string {
	switch f {
	case Keymap:
		return &s.Keymap
	case KeymapToggle:
		return &s.KeymapToggle
	case Font:
		return &s.Font
	case FontMap:
		return &s.FontMap
	case FontUnimap:
		return &s.FontUnimap
	case Unicode:
		return &s.Unicode
	default:
		return nil
	}
}

// Binding maps a key found in a source to the field it provides.
type Binding struct {
	Key   string
	Field Field
}

// Source is one configuration file consulted during resolution.
// Bindings are listed in priority order: when two keys provide the same
// field, the earlier binding wins.
type Source struct {
	Path     string
	Format   envfile.Format
	Bindings []Binding

	// Presence, when non-zero, makes the source a marker file: if Path
	// exists, Presence is set to Path and Bindings are ignored.
	Presence Field
}

// Stage groups sources of equal standing. A stage is only consulted when
// no earlier stage provided any field.
type Stage []Source
