package shader

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer scans shader source into tokens. Positions are 1-based.
type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// lex scans the whole source up front. Shader sources are tiny, so a
// token slice is simpler than a streaming scanner.
func lex(src string) ([]token, error) {
	lx := &lexer{src: src, line: 1, col: 1}
	var toks []token
	for {
		t, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks, nil
		}
	}
}

func (lx *lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d:%d: %s", lx.line, lx.col, fmt.Sprintf(format, args...))
}

// peek returns the current rune without consuming it, or -1 at EOF.
func (lx *lexer) peek() rune {
	if lx.pos >= len(lx.src) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
	return r
}

func (lx *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += size
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r
}

func (lx *lexer) skipSpaceAndComments() error {
	for lx.pos < len(lx.src) {
		switch {
		case unicode.IsSpace(lx.peek()):
			lx.advance()
		case strings.HasPrefix(lx.src[lx.pos:], "//"):
			for lx.pos < len(lx.src) && lx.peek() != '\n' {
				lx.advance()
			}
		case strings.HasPrefix(lx.src[lx.pos:], "/*"):
			lx.advance()
			lx.advance()
			for !strings.HasPrefix(lx.src[lx.pos:], "*/") {
				if lx.pos >= len(lx.src) {
					return lx.errorf("unterminated block comment")
				}
				lx.advance()
			}
			lx.advance()
			lx.advance()
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) next() (token, error) {
	if err := lx.skipSpaceAndComments(); err != nil {
		return token{}, err
	}
	line, col := lx.line, lx.col
	if lx.pos >= len(lx.src) {
		return token{kind: tokEOF, line: line, col: col}, nil
	}

	mk := func(kind tokenKind, lexeme string) token {
		return token{kind: kind, lexeme: lexeme, line: line, col: col}
	}

	r := lx.peek()
	switch {
	case unicode.IsDigit(r):
		return lx.scanNumber(line, col)
	case r == '"' || r == '\'':
		return lx.scanString(line, col)
	case unicode.IsLetter(r) || r == '_':
		start := lx.pos
		for lx.pos < len(lx.src) && (unicode.IsLetter(lx.peek()) || unicode.IsDigit(lx.peek()) || lx.peek() == '_') {
			lx.advance()
		}
		word := lx.src[start:lx.pos]
		if kind, ok := keywords[word]; ok {
			return mk(kind, word), nil
		}
		return mk(tokIdent, word), nil
	}

	lx.advance()
	switch r {
	case '+':
		return mk(tokPlus, "+"), nil
	case '-':
		return mk(tokMinus, "-"), nil
	case '*':
		return mk(tokStar, "*"), nil
	case '/':
		return mk(tokSlash, "/"), nil
	case '(':
		return mk(tokLParen, "("), nil
	case ')':
		return mk(tokRParen, ")"), nil
	case '{':
		return mk(tokLBrace, "{"), nil
	case '}':
		return mk(tokRBrace, "}"), nil
	case ',':
		return mk(tokComma, ","), nil
	case '.':
		return mk(tokDot, "."), nil
	case ';':
		return mk(tokSemicolon, ";"), nil
	case '=':
		if lx.peek() == '=' {
			lx.advance()
			return mk(tokEq, "=="), nil
		}
		return mk(tokAssign, "="), nil
	case '!':
		if lx.peek() == '=' {
			lx.advance()
			return mk(tokNotEq, "!="), nil
		}
		return mk(tokNot, "!"), nil
	case '<':
		if lx.peek() == '=' {
			lx.advance()
			return mk(tokLessEq, "<="), nil
		}
		return mk(tokLess, "<"), nil
	case '>':
		if lx.peek() == '=' {
			lx.advance()
			return mk(tokGreatEq, ">="), nil
		}
		return mk(tokGreater, ">"), nil
	case '&':
		if lx.peek() == '&' {
			lx.advance()
			return mk(tokAnd, "&&"), nil
		}
	case '|':
		if lx.peek() == '|' {
			lx.advance()
			return mk(tokOr, "||"), nil
		}
	}
	return token{}, fmt.Errorf("line %d:%d: unexpected character %q", line, col, r)
}

func (lx *lexer) scanNumber(line, col int) (token, error) {
	start := lx.pos
	for lx.pos < len(lx.src) && unicode.IsDigit(lx.peek()) {
		lx.advance()
	}
	if lx.peek() == '.' {
		// Lookahead: "1.add(...)" is a method call on 1, not a float.
		rest := lx.src[lx.pos+1:]
		if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
			lx.advance()
			for lx.pos < len(lx.src) && unicode.IsDigit(lx.peek()) {
				lx.advance()
			}
		}
	}
	lexeme := lx.src[start:lx.pos]
	n, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return token{}, fmt.Errorf("line %d:%d: invalid number %q", line, col, lexeme)
	}
	return token{kind: tokNumber, lexeme: lexeme, number: n, line: line, col: col}, nil
}

func (lx *lexer) scanString(line, col int) (token, error) {
	quote := lx.advance()
	start := lx.pos
	for {
		if lx.pos >= len(lx.src) || lx.peek() == '\n' {
			return token{}, fmt.Errorf("line %d:%d: unterminated string", line, col)
		}
		if lx.peek() == quote {
			break
		}
		lx.advance()
	}
	value := lx.src[start:lx.pos]
	lx.advance()
	return token{kind: tokString, lexeme: value, line: line, col: col}, nil
}
