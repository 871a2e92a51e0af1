package shader

import "fmt"

// tokenKind enumerates the lexical token types of the shader language.
type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent

	tokPlus
	tokMinus
	tokStar
	tokSlash

	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokComma
	tokDot
	tokSemicolon

	tokAssign  // =
	tokEq      // ==
	tokNotEq   // !=
	tokLess    // <
	tokLessEq  // <=
	tokGreater // >
	tokGreatEq // >=
	tokNot     // !
	tokAnd     // &&
	tokOr      // ||

	tokFunction
	tokReturn
	tokLet
	tokConst
	tokIf
	tokElse
	tokTrue
	tokFalse
)

var tokenNames = map[tokenKind]string{
	tokEOF:       "end of source",
	tokNumber:    "number",
	tokString:    "string",
	tokIdent:     "identifier",
	tokPlus:      "'+'",
	tokMinus:     "'-'",
	tokStar:      "'*'",
	tokSlash:     "'/'",
	tokLParen:    "'('",
	tokRParen:    "')'",
	tokLBrace:    "'{'",
	tokRBrace:    "'}'",
	tokComma:     "','",
	tokDot:       "'.'",
	tokSemicolon: "';'",
	tokAssign:    "'='",
	tokEq:        "'=='",
	tokNotEq:     "'!='",
	tokLess:      "'<'",
	tokLessEq:    "'<='",
	tokGreater:   "'>'",
	tokGreatEq:   "'>='",
	tokNot:       "'!'",
	tokAnd:       "'&&'",
	tokOr:        "'||'",
	tokFunction:  "'function'",
	tokReturn:    "'return'",
	tokLet:       "'let'",
	tokConst:     "'const'",
	tokIf:        "'if'",
	tokElse:      "'else'",
	tokTrue:      "'true'",
	tokFalse:     "'false'",
}

func (k tokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", k)
}

var keywords = map[string]tokenKind{
	"function": tokFunction,
	"return":   tokReturn,
	"let":      tokLet,
	"const":    tokConst,
	"if":       tokIf,
	"else":     tokElse,
	"true":     tokTrue,
	"false":    tokFalse,
}

// token is one lexical unit with its source position (1-based).
type token struct {
	kind   tokenKind
	lexeme string
	number float64 // valid for tokNumber
	line   int
	col    int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of source"
	case tokNumber, tokIdent, tokString:
		return fmt.Sprintf("%q", t.lexeme)
	default:
		return t.kind.String()
	}
}
