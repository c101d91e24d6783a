// Package depscan finds subscript references like parent["x"] in expression
// source text, for languages whose AST packages expose no generic walker.
// The scan tracks string and comment state so references inside literals or
// comments are not counted, but it performs no further syntax validation;
// callers are expected to run the language's real parser first.
package depscan

import (
	"fmt"
	"strings"
)

// Ref is one ident["name"] reference found in source, in source order.
type Ref struct {
	// Name is the string literal used as the subscript.
	Name string

	// Written reports that the reference is the target of an assignment
	// (plain or augmented). Augmented assignments count as both a read and a
	// write; callers decide how to fold that.
	Written bool
}

// ErrNonLiteralSubscript is returned when a scanned identifier is subscripted
// with anything other than a single string literal. Dynamic plug references
// cannot be resolved statically, so they are rejected rather than ignored.
type ErrNonLiteralSubscript struct {
	Ident string
}

func (e ErrNonLiteralSubscript) Error() string {
	return fmt.Sprintf("subscript of %q must be a string literal", e.Ident)
}

// Scan returns the references to each identifier in idents, keyed by
// identifier, in order of appearance. Comments (# and //) and string
// literals are skipped; an attribute access like obj.parent["x"] does not
// count as a reference to parent.
func Scan(source string, idents ...string) (map[string][]Ref, error) {
	targets := make(map[string]bool, len(idents))
	for _, id := range idents {
		targets[id] = true
	}

	refs := make(map[string][]Ref, len(idents))
	src := source
	i := 0
	prevNonSpace := byte(0)

	for i < len(src) {
		c := src[i]
		switch {
		case c == '#':
			i = skipLineComment(src, i)
			continue
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			i = skipLineComment(src, i)
			continue
		case c == '\'' || c == '"':
			_, next, ok := readStringLiteral(src, i)
			if !ok {
				// Unterminated literal; the language parser reports this.
				return refs, nil
			}
			i = next
			prevNonSpace = c
			continue
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			word := src[start:i]
			if targets[word] && prevNonSpace != '.' {
				found, next, err := readSubscript(src, i, word)
				if err != nil {
					return nil, err
				}
				if len(found) > 0 {
					refs[word] = append(refs[word], found...)
					i = next
					prevNonSpace = ']'
					continue
				}
			}
			prevNonSpace = word[len(word)-1]
			continue
		}
		if !isSpace(c) {
			prevNonSpace = c
		}
		i++
	}

	return refs, nil
}

// readSubscript parses ["literal"] starting at the first non-space character
// after an identifier, plus the assignment operator that may follow it. A
// plain assignment target yields one write ref; an augmented target yields a
// write ref and a read ref. Returns an empty slice when the identifier is not
// subscripted at all.
func readSubscript(src string, i int, ident string) ([]Ref, int, error) {
	j := skipSpace(src, i)
	if j >= len(src) || src[j] != '[' {
		return nil, i, nil
	}

	j = skipSpace(src, j+1)
	if j >= len(src) || (src[j] != '\'' && src[j] != '"') {
		return nil, 0, ErrNonLiteralSubscript{Ident: ident}
	}
	name, j, ok := readStringLiteral(src, j)
	if !ok {
		return nil, 0, ErrNonLiteralSubscript{Ident: ident}
	}

	j = skipSpace(src, j)
	if j >= len(src) || src[j] != ']' {
		return nil, 0, ErrNonLiteralSubscript{Ident: ident}
	}
	j++

	written, augmented := assignmentFollows(src, j)
	switch {
	case augmented:
		return []Ref{{Name: name, Written: true}, {Name: name}}, j, nil
	case written:
		return []Ref{{Name: name, Written: true}}, j, nil
	default:
		return []Ref{{Name: name}}, j, nil
	}
}

// assignmentFollows reports whether the text after a closing bracket is an
// assignment operator: = (but not ==) or an augmented form like +=, which
// also reads the previous value.
func assignmentFollows(src string, i int) (written, augmented bool) {
	i = skipSpace(src, i)
	if i >= len(src) {
		return false, false
	}
	switch src[i] {
	case '=':
		return i+1 >= len(src) || src[i+1] != '=', false
	case '+', '-', '*', '/', '%':
		aug := i+1 < len(src) && src[i+1] == '='
		return aug, aug
	}
	return false, false
}

// readStringLiteral reads a quoted literal starting at the opening quote.
// Returns the unescaped-enough contents (escape sequences other than the
// quote itself are kept verbatim) and the index just past the closing quote.
func readStringLiteral(src string, i int) (string, int, bool) {
	quote := src[i]
	var sb strings.Builder
	i++
	for i < len(src) {
		c := src[i]
		switch c {
		case '\\':
			if i+1 < len(src) {
				if src[i+1] == quote || src[i+1] == '\\' {
					sb.WriteByte(src[i+1])
				} else {
					sb.WriteByte(c)
					sb.WriteByte(src[i+1])
				}
				i += 2
				continue
			}
			return "", 0, false
		case quote:
			return sb.String(), i + 1, true
		case '\n':
			return "", 0, false
		}
		sb.WriteByte(c)
		i++
	}
	return "", 0, false
}

func skipLineComment(src string, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

func skipSpace(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\t') {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
