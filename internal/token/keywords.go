package token

var keywords = map[string]Kind{
	"fn":    KwFn,
	"if":    KwIf,
	"else":  KwElse,
	"loop":  KwLoop,
	"break": KwBreak,
	"true":  KwTrue,
	"false": KwFalse,
}

// LookupKeyword returns the keyword kind for ident, or Ident if it is not a keyword.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}
