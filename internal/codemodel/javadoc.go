package codemodel

import (
	"strings"

	"jcodemodel/internal/format"
	"jcodemodel/internal/types"
)

// CommentPart is a run of javadoc text. Items are strings or type
// references; types print as {@link Type} and take part in import decisions.
type CommentPart struct {
	items []any
}

// Add appends strings or types.TypeID values. Other values are ignored.
func (c *CommentPart) Add(items ...any) *CommentPart {
	for _, it := range items {
		switch v := it.(type) {
		case string, types.TypeID:
			c.items = append(c.items, v)
		}
	}
	return c
}

func (c *CommentPart) empty() bool { return c == nil || len(c.items) == 0 }

// format prints the part, starting new lines with prefix.
func (c *CommentPart) format(f format.Formatter, prefix string) {
	for _, it := range c.items {
		switch v := it.(type) {
		case string:
			lines := strings.Split(escapeComment(v), "\n")
			for i, line := range lines {
				if i > 0 {
					f.Newline()
					f.Raw(prefix)
				}
				f.Raw(line)
			}
		case types.TypeID:
			f.Raw("{@link ")
			f.Type(f.Types().Erasure(v))
			f.Raw("}")
		}
	}
}

func escapeComment(s string) string { return strings.ReplaceAll(s, "*/", "*&#47;") }

type docTag struct {
	name string
	arg  string
	typ  types.TypeID
	part *CommentPart
}

// DocComment is a javadoc block.
type DocComment struct {
	CommentPart
	tags []docTag
}

func (d *DocComment) tag(name, arg string, typ types.TypeID) *CommentPart {
	for _, t := range d.tags {
		if t.name == name && t.arg == arg && t.typ == typ {
			return t.part
		}
	}
	p := &CommentPart{}
	d.tags = append(d.tags, docTag{name: name, arg: arg, typ: typ, part: p})
	return p
}

// AddParam returns the text of the @param tag for name.
func (d *DocComment) AddParam(name string) *CommentPart { return d.tag("param", name, types.NoTypeID) }

// AddReturn returns the text of the @return tag.
func (d *DocComment) AddReturn() *CommentPart { return d.tag("return", "", types.NoTypeID) }

// AddThrows returns the text of the @throws tag for exception type t.
func (d *DocComment) AddThrows(t types.TypeID) *CommentPart { return d.tag("throws", "", t) }

func (d *DocComment) AddDeprecated() *CommentPart { return d.tag("deprecated", "", types.NoTypeID) }

func (d *DocComment) AddAuthor() *CommentPart { return d.tag("author", "", types.NoTypeID) }

// tag order in the printed block
var tagOrder = [...]string{"param", "return", "throws", "author", "deprecated"}

func (d *DocComment) Generate(f format.Formatter) {
	f.Raw("/**")
	f.Newline()
	if !d.CommentPart.empty() {
		f.Raw(" * ")
		d.CommentPart.format(f, " * ")
		f.Newline()
		if len(d.tags) > 0 {
			f.Raw(" *")
			f.Newline()
		}
	}
	for _, name := range tagOrder {
		for _, t := range d.tags {
			if t.name != name {
				continue
			}
			f.Raw(" * @" + t.name)
			switch {
			case t.arg != "":
				f.Raw(" " + t.arg)
			case t.typ != types.NoTypeID:
				f.Raw(" ")
				f.Type(f.Types().Erasure(t.typ))
			}
			if !t.part.empty() {
				f.Raw(" ")
				t.part.format(f, " *        ")
			}
			f.Newline()
		}
	}
	f.Raw(" */")
	f.Newline()
}

// documented is embedded by every declaration that can carry javadoc.
type documented struct {
	doc *DocComment
}

// Javadoc returns the declaration's javadoc, creating it on first use.
func (d *documented) Javadoc() *DocComment {
	if d.doc == nil {
		d.doc = &DocComment{}
	}
	return d.doc
}

func (d *documented) declareDoc(f format.Formatter) {
	if d.doc != nil {
		d.doc.Generate(f)
	}
}
