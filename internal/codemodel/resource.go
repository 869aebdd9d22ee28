package codemodel

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/cockroachdb/errors"
)

// ResourceFile is a non-Java file stored in a package directory.
type ResourceFile interface {
	Name() string
	Content() ([]byte, error)
}

// TextFile is a resource holding UTF-8 text.
type TextFile struct {
	name string
	text string
}

func NewTextFile(name, text string) *TextFile { return &TextFile{name: name, text: text} }

func (t *TextFile) Name() string             { return t.name }
func (t *TextFile) SetText(text string)      { t.text = text }
func (t *TextFile) Content() ([]byte, error) { return []byte(t.text), nil }

// StaticFile is a resource with fixed bytes, e.g. copied from an embed.FS.
type StaticFile struct {
	name string
	data []byte
}

func NewStaticFile(name string, data []byte) *StaticFile {
	return &StaticFile{name: name, data: slices.Clone(data)}
}

func (s *StaticFile) Name() string             { return s.name }
func (s *StaticFile) Content() ([]byte, error) { return slices.Clone(s.data), nil }

// PropertyFile is a java.util.Properties file. Entries keep their insertion
// order and are written in ISO-8859-1 with \uXXXX escapes.
type PropertyFile struct {
	name   string
	keys   []string
	values map[string]string
}

func NewPropertyFile(name string) *PropertyFile {
	return &PropertyFile{name: name, values: make(map[string]string)}
}

func (p *PropertyFile) Name() string { return p.name }

// Set adds or replaces an entry.
func (p *PropertyFile) Set(key, value string) *PropertyFile {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

// Get returns the value stored under key.
func (p *PropertyFile) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *PropertyFile) Content() ([]byte, error) {
	var sb strings.Builder
	for _, k := range p.keys {
		sb.WriteString(escapeProperty(k, true))
		sb.WriteByte('=')
		sb.WriteString(escapeProperty(p.values[k], false))
		sb.WriteByte('\n')
	}
	return []byte(sb.String()), nil
}

// escapeProperty follows Properties.store: backslash escapes for control
// and separator characters, \uXXXX for anything outside printable ASCII.
// Spaces are escaped everywhere in keys and only in leading position in
// values.
func escapeProperty(s string, key bool) string {
	var sb strings.Builder
	for i, r := range s {
		switch r {
		case ' ':
			if key || i == 0 {
				sb.WriteByte('\\')
			}
			sb.WriteByte(' ')
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\f':
			sb.WriteString(`\f`)
		case '\\', '=', ':', '#', '!':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		default:
			if r < 0x20 || r > 0x7e {
				for _, u := range utf16.Encode([]rune{r}) {
					fmt.Fprintf(&sb, `\u%04X`, u)
				}
				continue
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// AddResource stores rf in the package directory. Names must be plain file
// names and may not collide with another resource or a class's source file.
func (p *Package) AddResource(rf ResourceFile) error {
	name := rf.Name()
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Newf("codemodel: resource name %q is not a plain file name", name)
	}
	if _, ok := p.Resource(name); ok {
		return duplicate("resource", name, p.describe())
	}
	if cls, ok := strings.CutSuffix(name, ".java"); ok {
		if _, clash := p.Get(cls); clash {
			return duplicate("resource", name, p.describe())
		}
	}
	p.resources = append(p.resources, rf)
	return nil
}

// Resource looks a resource up by file name.
func (p *Package) Resource(name string) (ResourceFile, bool) {
	for _, rf := range p.resources {
		if rf.Name() == name {
			return rf, true
		}
	}
	return nil, false
}

// Resources returns the package's resources sorted by name.
func (p *Package) Resources() []ResourceFile {
	out := slices.Clone(p.resources)
	slices.SortFunc(out, func(a, b ResourceFile) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}
