// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package interpolate substitutes environment-variable placeholders in
// configuration text and in already-parsed configuration values.
//
// Three placeholder forms are recognized:
//
//	${NAME:-default}  braced with a literal default
//	${NAME}           braced without default
//	$NAME             bare
//
// Names consist of upper-case ASCII letters, digits and underscores. A
// placeholder resolves to the variable's value when it is present in the
// environment (even if empty), otherwise to its default, otherwise to "".
//
// Text is first split into a sequence of [Token] values by [Tokenize], then
// each placeholder token is resolved independently, so substitution never
// re-scans resolved output.
package interpolate

import "strings"

// Kind distinguishes literal spans from placeholders.
type Kind int

const (
	// KindLiteral is text copied to the output unchanged.
	KindLiteral Kind = iota
	// KindPlaceholder is a reference to an environment variable.
	KindPlaceholder
)

// Form is the syntactic form of a placeholder.
type Form int

const (
	// FormBracedDefault is ${NAME:-DEFAULT}.
	FormBracedDefault Form = iota + 1
	// FormBraced is ${NAME}.
	FormBraced
	// FormBare is $NAME.
	FormBare
)

// Token is one lexical unit of interpolated text.
type Token struct {
	Kind Kind
	// Raw is the exact source text of the token.
	Raw string

	// Placeholder fields; zero for literals.
	Form    Form
	Name    string
	Default string
}

// HasDefault reports whether the token carries a literal default.
func (t Token) HasDefault() bool {
	return t.Kind == KindPlaceholder && t.Form == FormBracedDefault
}

// Tokenize splits text into literal and placeholder tokens. Placeholders are
// matched leftmost-first without overlap; at each '$' the braced form is tried
// before the bare form. A '$' that does not begin a valid placeholder is
// literal. Adjacent literal text is coalesced into a single token.
func Tokenize(text string) []Token {
	var tokens []Token
	litStart := 0

	flush := func(end int) {
		if end > litStart {
			tokens = append(tokens, Token{Kind: KindLiteral, Raw: text[litStart:end]})
		}
	}

	for i := 0; i < len(text); {
		if text[i] != '$' {
			i++
			continue
		}

		tok, n, ok := scanBraced(text[i:])
		if !ok {
			tok, n, ok = scanBare(text[i:])
		}
		if !ok {
			i++
			continue
		}

		flush(i)
		tokens = append(tokens, tok)
		i += n
		litStart = i
	}
	flush(len(text))

	return tokens
}

// scanBraced matches ${NAME} or ${NAME:-DEFAULT} at the start of s.
func scanBraced(s string) (Token, int, bool) {
	if !strings.HasPrefix(s, "${") {
		return Token{}, 0, false
	}

	nameEnd := 2 + nameLen(s[2:])
	if nameEnd == 2 || nameEnd >= len(s) {
		return Token{}, 0, false
	}
	name := s[2:nameEnd]

	if s[nameEnd] == '}' {
		return Token{Kind: KindPlaceholder, Raw: s[:nameEnd+1], Form: FormBraced, Name: name}, nameEnd + 1, true
	}

	if strings.HasPrefix(s[nameEnd:], ":-") {
		defStart := nameEnd + 2
		closing := strings.IndexByte(s[defStart:], '}')
		if closing < 0 {
			return Token{}, 0, false
		}
		end := defStart + closing + 1
		return Token{
			Kind:    KindPlaceholder,
			Raw:     s[:end],
			Form:    FormBracedDefault,
			Name:    name,
			Default: s[defStart : defStart+closing],
		}, end, true
	}

	return Token{}, 0, false
}

// scanBare matches $NAME at the start of s.
func scanBare(s string) (Token, int, bool) {
	n := nameLen(s[1:])
	if n == 0 {
		return Token{}, 0, false
	}
	end := 1 + n
	return Token{Kind: KindPlaceholder, Raw: s[:end], Form: FormBare, Name: s[1:end]}, end, true
}

// nameLen returns the length of the [A-Z0-9_]+ run at the start of s.
func nameLen(s string) int {
	n := 0
	for n < len(s) && isNameByte(s[n]) {
		n++
	}
	return n
}

func isNameByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
}
