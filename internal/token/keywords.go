package token

var keywords = map[string]Kind{
	"False":    KwFalse,
	"None":     KwNone,
	"True":     KwTrue,
	"and":      KwAnd,
	"break":    KwBreak,
	"class":    KwClass,
	"continue": KwContinue,
	"def":      KwDef,
	"del":      KwDel,
	"elif":     KwElif,
	"else":     KwElse,
	"for":      KwFor,
	"global":   KwGlobal,
	"if":       KwIf,
	"in":       KwIn,
	"is":       KwIs,
	"not":      KwNot,
	"or":       KwOr,
	"pass":     KwPass,
	"return":   KwReturn,
	"while":    KwWhile,
}

// LookupKeyword resolves an identifier lexeme to its keyword kind, or Name.
func LookupKeyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Name
}
