package types

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"

	"jcodemodel/internal/javaname"
)

// ParseError reports malformed type text.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("types: parse %q: %s at offset %d", e.Input, e.Msg, e.Offset)
}

// Parser turns type text such as `java.util.Map<String, ? extends Number>[]`
// into type nodes.
type Parser struct {
	Types *Interner
	// Lookup resolves names before the registry is consulted. Use it for
	// type variables and simple names in scope.
	Lookup func(name string) (TypeID, bool)
}

// ParseType parses type text with the registry alone; primitives are accepted.
func (in *Interner) ParseType(text string) (TypeID, error) {
	return Parser{Types: in}.Parse(text)
}

// Parse parses a complete type. Trailing input is an error.
func (p Parser) Parse(text string) (TypeID, error) {
	st := &parseState{p: p, src: text}
	id, err := st.parseType(true)
	if err == nil {
		st.skipSpace()
		if st.pos < len(st.src) {
			err = st.fail("unexpected %q", st.peekRune())
		}
	}
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			caret := strings.Repeat(" ", perr.Offset) + "^"
			return NoTypeID, errors.WithDetailf(err, "%s\n%s", text, caret)
		}
		return NoTypeID, err
	}
	return id, nil
}

func (p Parser) mustParse(text string) TypeID {
	id, err := p.Parse(text)
	if err != nil {
		panic(errors.Wrapf(err, "types: catalogue entry %q", text))
	}
	return id
}

type parseState struct {
	p   Parser
	src string
	pos int
}

func (st *parseState) fail(format string, args ...any) error {
	return &ParseError{Input: st.src, Offset: st.pos, Msg: fmt.Sprintf(format, args...)}
}

func (st *parseState) skipSpace() {
	for st.pos < len(st.src) && (st.src[st.pos] == ' ' || st.src[st.pos] == '\t') {
		st.pos++
	}
}

func (st *parseState) peek() byte {
	if st.pos >= len(st.src) {
		return 0
	}
	return st.src[st.pos]
}

func (st *parseState) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(st.src[st.pos:])
	return r
}

// parseType parses one type reference. Bare primitives are only allowed
// at top level; inside type arguments they must be array components.
func (st *parseState) parseType(top bool) (TypeID, error) {
	st.skipSpace()
	if st.peek() == '?' {
		return st.parseWildcard()
	}
	start := st.pos
	name, err := st.parseName()
	if err != nil {
		return NoTypeID, err
	}
	id, prim, err := st.resolve(name, start)
	if err != nil {
		return NoTypeID, err
	}
	id, err = st.parseSuffix(id, prim)
	if err != nil {
		return NoTypeID, err
	}
	if !top && st.p.Types.KindOf(id) == KindPrimitive {
		return NoTypeID, &ParseError{Input: st.src, Offset: start, Msg: fmt.Sprintf("primitive %s cannot be a type argument", name)}
	}
	return id, nil
}

func (st *parseState) parseWildcard() (TypeID, error) {
	in := st.p.Types
	st.pos++ // '?'
	st.skipSpace()
	if st.pos >= len(st.src) || !javaname.IsIdentifierStart(st.peekRune()) {
		return in.Wildcard(), nil
	}
	kwStart := st.pos
	word, err := st.parseIdent()
	if err != nil {
		return NoTypeID, err
	}
	var mode BoundMode
	switch word {
	case "extends":
		mode = BoundExtends
	case "super":
		mode = BoundSuper
	default:
		st.pos = kwStart
		return NoTypeID, st.fail("expected 'extends' or 'super' after '?', got %q", word)
	}
	bound, err := st.parseType(false)
	if err != nil {
		return NoTypeID, err
	}
	if in.KindOf(bound) == KindWildcard {
		return NoTypeID, st.fail("wildcard bound cannot be a wildcard")
	}
	if mode == BoundSuper {
		return in.WildcardSuper(bound), nil
	}
	return in.WildcardExtends(bound), nil
}

func (st *parseState) parseIdent() (string, error) {
	start := st.pos
	r, size := utf8.DecodeRuneInString(st.src[st.pos:])
	if size == 0 || !javaname.IsIdentifierStart(r) {
		if size == 0 {
			return "", st.fail("unexpected end of input, expected identifier")
		}
		return "", st.fail("unexpected %q, expected identifier", r)
	}
	st.pos += size
	for st.pos < len(st.src) {
		r, size = utf8.DecodeRuneInString(st.src[st.pos:])
		if !javaname.IsIdentifierPart(r) {
			break
		}
		st.pos += size
	}
	return st.src[start:st.pos], nil
}

func (st *parseState) parseName() (string, error) {
	var sb strings.Builder
	for {
		ident, err := st.parseIdent()
		if err != nil {
			return "", err
		}
		sb.WriteString(ident)
		if st.peek() != '.' {
			return sb.String(), nil
		}
		st.pos++
		sb.WriteByte('.')
	}
}

func (st *parseState) resolve(name string, start int) (TypeID, bool, error) {
	in := st.p.Types
	if st.p.Lookup != nil {
		if id, ok := st.p.Lookup(name); ok {
			return id, false, nil
		}
	}
	if id, ok := in.Primitive(name); ok {
		return id, true, nil
	}
	if !strings.Contains(name, ".") {
		// simple names resolve against java.lang, as in source
		if fqn, ok := CatalogShortName(name); ok {
			name = fqn
		}
	}
	id, err := in.Ref(name)
	if err != nil {
		return NoTypeID, false, &ParseError{Input: st.src, Offset: start, Msg: fmt.Sprintf("cannot resolve %s: %v", name, err)}
	}
	return id, false, nil
}

func (st *parseState) parseSuffix(id TypeID, prim bool) (TypeID, error) {
	for {
		st.skipSpace()
		switch st.peek() {
		case '<':
			if prim {
				return NoTypeID, st.fail("primitive cannot take type arguments")
			}
			narrowed, err := st.parseArgs(id)
			if err != nil {
				return NoTypeID, err
			}
			id = narrowed
		case '[':
			st.pos++
			st.skipSpace()
			if st.peek() != ']' {
				return NoTypeID, st.fail("expected ']'")
			}
			st.pos++
			if id == st.p.Types.builtins.Void {
				return NoTypeID, st.fail("void cannot be an array component")
			}
			id = st.p.Types.Array(id)
			prim = false
		default:
			return id, nil
		}
	}
}

func (st *parseState) parseArgs(basis TypeID) (TypeID, error) {
	in := st.p.Types
	open := st.pos
	st.pos++ // '<'
	var args []TypeID
	for {
		arg, err := st.parseType(false)
		if err != nil {
			return NoTypeID, err
		}
		args = append(args, arg)
		st.skipSpace()
		switch st.peek() {
		case ',':
			st.pos++
		case '>':
			st.pos++
			id, err := in.Narrow(basis, args...)
			if err != nil {
				return NoTypeID, &ParseError{Input: st.src, Offset: open, Msg: err.Error()}
			}
			return id, nil
		case 0:
			return NoTypeID, st.fail("missing '>' for '<' at offset %d", open)
		default:
			return NoTypeID, st.fail("unexpected %q in type arguments", st.peekRune())
		}
	}
}
