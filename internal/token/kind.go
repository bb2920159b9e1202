package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero Kind. It is never produced by the tokenizer and
	// doubles as the "no expected token" sentinel in error details.
	Invalid Kind = iota
	// EndMarker terminates every well-formed token stream.
	EndMarker
	// ErrorToken marks a lexeme the tokenizer could not classify.
	ErrorToken
	// Newline ends a logical line.
	Newline
	// Indent opens an indentation block.
	Indent
	// Dedent closes an indentation block.
	Dedent

	// Name represents an identifier token.
	Name
	// Number represents an integer or floating point literal.
	Number
	// String represents a string literal, including its prefix and quotes.
	String

	// KwFalse represents the 'False' keyword.
	KwFalse // False
	// KwNone represents the 'None' keyword.
	KwNone // None
	// KwTrue represents the 'True' keyword.
	KwTrue // True
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwDel represents the 'del' keyword.
	KwDel // del
	// KwElif represents the 'elif' keyword.
	KwElif // elif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwGlobal represents the 'global' keyword.
	KwGlobal // global
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwIs represents the 'is' keyword.
	KwIs // is
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwPass represents the 'pass' keyword.
	KwPass // pass
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwWhile represents the 'while' keyword.
	KwWhile // while

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// DoubleStar represents the power operator token.
	DoubleStar // **
	// DoubleSlash represents the floor division operator token.
	DoubleSlash // //
	// Lt represents the less-than operator token.
	Lt // <
	// Gt represents the greater-than operator token.
	Gt // >
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// EqEq represents the equality operator token.
	EqEq // ==
	// NotEq represents the inequality operator token ('!=' or the legacy '<>').
	NotEq // !=
	// Assign represents the assignment operator token.
	Assign // =
	// PlusAssign represents the augmented add-assign operator token.
	PlusAssign // +=
	// MinusAssign represents the augmented subtract-assign operator token.
	MinusAssign // -=
	// StarAssign represents the augmented multiply-assign operator token.
	StarAssign // *=
	// SlashAssign represents the augmented divide-assign operator token.
	SlashAssign // /=
	// PercentAssign represents the augmented modulo-assign operator token.
	PercentAssign // %=
	// DoubleStarAssign represents the augmented power-assign operator token.
	DoubleStarAssign // **=
	// DoubleSlashAssign represents the augmented floor-divide-assign operator token.
	DoubleSlashAssign // //=
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .

	// KindCount is the number of distinct token kinds.
	KindCount
)

var kindNames = map[Kind]string{
	Invalid:           "INVALID",
	EndMarker:         "ENDMARKER",
	ErrorToken:        "ERRORTOKEN",
	Newline:           "NEWLINE",
	Indent:            "INDENT",
	Dedent:            "DEDENT",
	Name:              "NAME",
	Number:            "NUMBER",
	String:            "STRING",
	KwFalse:           "False",
	KwNone:            "None",
	KwTrue:            "True",
	KwAnd:             "and",
	KwBreak:           "break",
	KwClass:           "class",
	KwContinue:        "continue",
	KwDef:             "def",
	KwDel:             "del",
	KwElif:            "elif",
	KwElse:            "else",
	KwFor:             "for",
	KwGlobal:          "global",
	KwIf:              "if",
	KwIn:              "in",
	KwIs:              "is",
	KwNot:             "not",
	KwOr:              "or",
	KwPass:            "pass",
	KwReturn:          "return",
	KwWhile:           "while",
	Plus:              "+",
	Minus:             "-",
	Star:              "*",
	Slash:             "/",
	Percent:           "%",
	DoubleStar:        "**",
	DoubleSlash:       "//",
	Lt:                "<",
	Gt:                ">",
	LtEq:              "<=",
	GtEq:              ">=",
	EqEq:              "==",
	NotEq:             "!=",
	Assign:            "=",
	PlusAssign:        "+=",
	MinusAssign:       "-=",
	StarAssign:        "*=",
	SlashAssign:       "/=",
	PercentAssign:     "%=",
	DoubleStarAssign:  "**=",
	DoubleSlashAssign: "//=",
	LParen:            "(",
	RParen:            ")",
	LBracket:          "[",
	RBracket:          "]",
	Colon:             ":",
	Semicolon:         ";",
	Comma:             ",",
	Dot:               ".",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}
