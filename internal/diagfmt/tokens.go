package diagfmt

import (
	"fmt"
	"io"

	"langtwo/internal/source"
	"langtwo/internal/token"
)

// Tokens writes one token per line: position, kind, and source text.
func Tokens(w io.Writer, toks []token.Token, file *source.File) {
	for _, tok := range toks {
		pos := file.Position(tok.Span.Start)
		if tok.Kind == token.EOF {
			fmt.Fprintf(w, "%4d:%-3d %s\n", pos.Line, pos.Col, tok.Kind)
			continue
		}
		fmt.Fprintf(w, "%4d:%-3d %-8s %q\n", pos.Line, pos.Col, tok.Kind, tok.Text)
	}
}
