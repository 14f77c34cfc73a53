// Package driver wires the pipeline stages together for the CLI and tests.
package driver

import (
	"langtwo/internal/ast"
	"langtwo/internal/diag"
	"langtwo/internal/ir"
	"langtwo/internal/irbuild"
	"langtwo/internal/ircache"
	"langtwo/internal/lexer"
	"langtwo/internal/parser"
	"langtwo/internal/source"
	"langtwo/internal/token"
)

// DefaultMaxDiagnostics bounds the diagnostics bag when callers pass 0.
const DefaultMaxDiagnostics = 100

// TokenizeResult carries the token stream plus its diagnostics.
type TokenizeResult struct {
	File   *source.File
	Tokens []token.Token
	Bag    *diag.Bag
}

// TokenizeSource scans an in-memory file.
func TokenizeSource(file *source.File, maxDiag int) *TokenizeResult {
	if maxDiag <= 0 {
		maxDiag = DefaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiag)
	toks := lexer.New(file, bag).Tokens()
	return &TokenizeResult{File: file, Tokens: toks, Bag: bag}
}

// TokenizeFile scans a file from disk.
func TokenizeFile(path string, maxDiag int) (*TokenizeResult, error) {
	file, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return TokenizeSource(file, maxDiag), nil
}

// ParseResult carries the AST plus its diagnostics.
type ParseResult struct {
	File    *source.File
	Program *ast.Program
	Bag     *diag.Bag
}

// ParseSource tokenizes and parses an in-memory file.
func ParseSource(file *source.File, maxDiag int) *ParseResult {
	tr := TokenizeSource(file, maxDiag)
	prog := parser.Parse(tr.Tokens, tr.Bag)
	return &ParseResult{File: file, Program: prog, Bag: tr.Bag}
}

// ParseFile tokenizes and parses a file from disk.
func ParseFile(path string, maxDiag int) (*ParseResult, error) {
	file, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSource(file, maxDiag), nil
}

// BuildResult carries a compiled artifact. Program is nil when the artifact
// came from the cache; IR is nil when the bag holds errors.
type BuildResult struct {
	File    *source.File
	Program *ast.Program
	Bag     *diag.Bag
	IR      *ir.IR
	Cached  bool
}

// BuildSource parses and lowers an in-memory file. Lexer and parser findings
// land in the bag (IR stays nil); a lowering failure is returned as an error.
func BuildSource(file *source.File, maxDiag int) (*BuildResult, error) {
	pr := ParseSource(file, maxDiag)
	result := &BuildResult{File: file, Program: pr.Program, Bag: pr.Bag}
	if pr.Bag.HasErrors() {
		return result, nil
	}
	artifact, err := irbuild.New().Build(pr.Program)
	if err != nil {
		return result, err
	}
	result.IR = artifact
	return result, nil
}

// BuildFile compiles a file from disk, consulting cache when non-nil.
func BuildFile(path string, maxDiag int, cache *ircache.Cache) (*BuildResult, error) {
	file, err := source.ReadFile(path)
	if err != nil {
		return nil, err
	}

	key := ircache.KeyFor(file.Content)
	if cache != nil {
		if artifact, hit, err := cache.Get(key); err == nil && hit {
			return &BuildResult{
				File:   file,
				Bag:    diag.NewBag(1),
				IR:     artifact,
				Cached: true,
			}, nil
		}
	}

	result, err := BuildSource(file, maxDiag)
	if err != nil {
		return result, err
	}
	if cache != nil && result.IR != nil {
		// Cache failures are not build failures.
		_ = cache.Put(key, result.IR)
	}
	return result, nil
}
