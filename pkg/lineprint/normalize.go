package lineprint

import (
	"strings"
	"unicode"
)

// StripSpace deletes every whitespace character.
func StripSpace(s string) (string, error) {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s), nil
}

// StripComments removes // and /* */ comments from C++ source, after splicing
// backslash-continued lines. String and character literals are left intact,
// including any comment-looking content inside them. Block comments are
// replaced by a single space. An unterminated block comment runs to the end
// of the input; candidates are often partial blocks, so that is not an error.
// Beware that scope buffers concatenate lines without newlines, so inside a
// multi-line candidate a // comment runs to the end of the candidate.
func StripComments(s string) (string, error) {
	s = strings.ReplaceAll(s, "\\\r\n", "")
	s = strings.ReplaceAll(s, "\\\n", "")

	const (
		code = iota
		lineComment
		blockComment
		stringLit
		charLit
	)

	var b strings.Builder
	b.Grow(len(s))
	state := code

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch state {
		case code:
			switch {
			case c == '/' && i+1 < len(s) && s[i+1] == '/':
				state = lineComment
				i++
			case c == '/' && i+1 < len(s) && s[i+1] == '*':
				state = blockComment
				i++
				b.WriteByte(' ')
			case c == '"':
				state = stringLit
				b.WriteByte(c)
			case c == '\'':
				state = charLit
				b.WriteByte(c)
			default:
				b.WriteByte(c)
			}
		case lineComment:
			if c == '\n' {
				state = code
				b.WriteByte(c)
			}
		case blockComment:
			if c == '*' && i+1 < len(s) && s[i+1] == '/' {
				state = code
				i++
			}
		case stringLit:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			} else if c == '"' {
				state = code
			}
		case charLit:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			} else if c == '\'' {
				state = code
			}
		}
	}
	return b.String(), nil
}

// CppNormalize is the normalization the hash command applies before
// digesting: comments and line continuations go first, then all whitespace.
// Blocks differing only in formatting or comments fingerprint identically.
func CppNormalize(s string) (string, error) {
	s, err := StripComments(s)
	if err != nil {
		return "", err
	}
	return StripSpace(s)
}
