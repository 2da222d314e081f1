package provider

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/build/constraint"
	"go/parser"
	"go/scanner"
	"go/token"
	"strings"

	m "symdiff.dev/pkg/symdiff/internal/model"
)

// GoProvider diffs Go source files at the symbol level: top-level
// functions, methods, types, consts and vars. Exported symbols map to
// public visibility, unexported ones to internal (they remain visible to
// the rest of the package). The variant label is interpreted as a build
// tag: files whose //go:build constraint excludes the tag are invisible
// in that variant's pass.
type GoProvider struct{}

// NewGoProvider constructs a GoProvider.
func NewGoProvider() *GoProvider {
	return &GoProvider{}
}

// Name implements domain.Provider.
func (p *GoProvider) Name() string {
	return "gosrc"
}

// Supports implements domain.Provider.
func (p *GoProvider) Supports(path string) bool {
	return strings.HasSuffix(path, ".go")
}

// Changes implements domain.Provider.
func (p *GoProvider) Changes(ctx context.Context, variant string, pair m.FilePair, oldContent, newContent []byte) ([]*m.Change, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if variant != "" {
		if oldContent != nil && !buildVisible(oldContent, variant) {
			oldContent = nil
		}

		if newContent != nil && !buildVisible(newContent, variant) {
			newContent = nil
		}
	}

	if oldContent == nil && newContent == nil {
		return nil, nil
	}

	var (
		oldSyms, newSyms []symbol
		err              error
	)

	if oldContent != nil {
		oldSyms, err = parseSymbols(pair.RelPath, oldContent)
		if err != nil {
			return nil, err
		}
	}

	if newContent != nil {
		newSyms, err = parseSymbols(pair.RelPath, newContent)
		if err != nil {
			return nil, err
		}
	}

	return diffSymbols(pair.RelPath, oldSyms, newSyms), nil
}

// buildVisible evaluates the file's //go:build constraint with exactly the
// variant tag enabled. Files without a constraint are visible everywhere.
func buildVisible(src []byte, variant string) bool {
	scanner := bufio.NewScanner(bytes.NewReader(src))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "package ") {
			break
		}

		if !constraint.IsGoBuild(line) {
			continue
		}

		expr, err := constraint.Parse(line)
		if err != nil {
			return true
		}

		return expr.Eval(func(tag string) bool { return tag == variant })
	}

	return true
}

// symbol is one top-level declaration extracted from a Go file.
type symbol struct {
	name          string
	kind          m.ElementKind
	vis           m.Visibility
	sig           string
	body          string
	full          string
	loc           m.Location
	bodyStartLine int
}

func symbolKey(s symbol) string {
	return string(s.kind) + "\x00" + s.name
}

func parseSymbols(filename string, src []byte) ([]symbol, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	text := string(src)
	slice := func(from, to token.Pos) string {
		return text[fset.Position(from).Offset:fset.Position(to).Offset]
	}

	var syms []symbol

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			syms = append(syms, funcSymbol(fset, d, filename, slice))
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				syms = append(syms, specSymbols(fset, d, spec, filename, slice)...)
			}
		}
	}

	return syms, nil
}

func funcSymbol(fset *token.FileSet, d *ast.FuncDecl, filename string, slice func(from, to token.Pos) string) symbol {
	name := d.Name.Name
	kind := m.KindFunction

	if d.Recv != nil && len(d.Recv.List) > 0 {
		kind = m.KindMethod
		name = "(" + slice(d.Recv.List[0].Type.Pos(), d.Recv.List[0].Type.End()) + ")." + name
	}

	full := slice(d.Pos(), d.End())
	sig := full
	body := ""
	bodyStart := 0

	if d.Body != nil {
		sig = slice(d.Pos(), d.Body.Pos())
		body = slice(d.Body.Pos(), d.Body.End())
		bodyStart = fset.Position(d.Body.Pos()).Line
	}

	return symbol{
		name:          name,
		kind:          kind,
		vis:           goVisibility(d.Name.Name),
		sig:           sig,
		body:          body,
		full:          full,
		loc:           spanLocation(fset, filename, d.Pos(), d.End()),
		bodyStartLine: bodyStart,
	}
}

func specSymbols(fset *token.FileSet, d *ast.GenDecl, spec ast.Spec, filename string, slice func(from, to token.Pos) string) []symbol {
	switch s := spec.(type) {
	case *ast.TypeSpec:
		full := slice(s.Pos(), s.End())

		return []symbol{{
			name: s.Name.Name,
			kind: m.KindType,
			vis:  goVisibility(s.Name.Name),
			sig:  full,
			full: full,
			loc:  spanLocation(fset, filename, s.Pos(), s.End()),
		}}
	case *ast.ValueSpec:
		kind := m.KindVar
		if d.Tok == token.CONST {
			kind = m.KindConst
		}

		full := slice(s.Pos(), s.End())

		sigEnd := s.Names[len(s.Names)-1].End()
		if s.Type != nil {
			sigEnd = s.Type.End()
		}

		sig := slice(s.Pos(), sigEnd)

		body := ""
		if len(s.Values) > 0 {
			body = slice(s.Values[0].Pos(), s.Values[len(s.Values)-1].End())
		}

		out := make([]symbol, 0, len(s.Names))
		for _, name := range s.Names {
			out = append(out, symbol{
				name: name.Name,
				kind: kind,
				vis:  goVisibility(name.Name),
				sig:  sig,
				body: body,
				full: full,
				loc:  spanLocation(fset, filename, s.Pos(), s.End()),
			})
		}

		return out
	default:
		return nil
	}
}

func goVisibility(name string) m.Visibility {
	if ast.IsExported(name) {
		return m.VisibilityPublic
	}

	return m.VisibilityInternal
}

func spanLocation(fset *token.FileSet, filename string, from, to token.Pos) m.Location {
	start := fset.Position(from)
	end := fset.Position(to)

	return m.Location{
		File:      filename,
		StartLine: start.Line,
		StartCol:  start.Column,
		EndLine:   end.Line,
		EndCol:    end.Column,
	}
}

// diffSymbols compares two symbol lists and produces the root changes for
// one file. Old symbols are visited in source order, then new-only
// symbols in source order, so output is deterministic.
func diffSymbols(file string, oldSyms, newSyms []symbol) []*m.Change {
	newByKey := make(map[string]symbol, len(newSyms))
	for _, s := range newSyms {
		newByKey[symbolKey(s)] = s
	}

	oldByKey := make(map[string]symbol, len(oldSyms))
	for _, s := range oldSyms {
		oldByKey[symbolKey(s)] = s
	}

	renames := detectRenames(oldSyms, newSyms, oldByKey, newByKey)

	oldRanks := matchedRanks(oldSyms, newByKey)
	newRanks := matchedRanks(newSyms, oldByKey)

	var changes []*m.Change

	renamedNewKeys := make(map[string]struct{}, len(renames))
	for _, target := range renames {
		renamedNewKeys[symbolKey(target)] = struct{}{}
	}

	for _, oldSym := range oldSyms {
		key := symbolKey(oldSym)

		if target, ok := renames[key]; ok {
			changes = append(changes, renameChange(oldSym, target))
			continue
		}

		newSym, ok := newByKey[key]
		if !ok {
			changes = append(changes, removeChange(oldSym))
			continue
		}

		if c := compareSymbol(file, oldSym, newSym, oldRanks[key] != newRanks[key]); c != nil {
			changes = append(changes, c)
		}
	}

	for _, newSym := range newSyms {
		key := symbolKey(newSym)

		if _, ok := oldByKey[key]; ok {
			continue
		}

		if _, ok := renamedNewKeys[key]; ok {
			continue
		}

		changes = append(changes, addChange(newSym))
	}

	return changes
}

// detectRenames matches an old-only symbol to a new-only symbol of the
// same kind with an identical, non-empty body. First match wins.
func detectRenames(oldSyms, newSyms []symbol, oldByKey, newByKey map[string]symbol) map[string]symbol {
	renames := make(map[string]symbol)
	taken := make(map[string]struct{})

	for _, oldSym := range oldSyms {
		if _, ok := newByKey[symbolKey(oldSym)]; ok {
			continue
		}

		if oldSym.body == "" {
			continue
		}

		for _, newSym := range newSyms {
			key := symbolKey(newSym)

			if _, ok := oldByKey[key]; ok {
				continue
			}

			if _, ok := taken[key]; ok {
				continue
			}

			if newSym.kind == oldSym.kind && newSym.body == oldSym.body {
				renames[symbolKey(oldSym)] = newSym
				taken[key] = struct{}{}

				break
			}
		}
	}

	return renames
}

// matchedRanks assigns each symbol present on both sides its rank among
// the survivors, in source order. Reorder detection compares these ranks,
// so inserting or removing a declaration does not shift every declaration
// below it into a spurious move.
func matchedRanks(syms []symbol, otherByKey map[string]symbol) map[string]int {
	ranks := make(map[string]int)

	for _, s := range syms {
		key := symbolKey(s)
		if _, ok := otherByKey[key]; ok {
			ranks[key] = len(ranks)
		}
	}

	return ranks
}

func compareSymbol(file string, oldSym, newSym symbol, reordered bool) *m.Change {
	if oldSym.full == newSym.full {
		if reordered {
			return movedChange(oldSym, newSym)
		}

		return nil
	}

	oldLoc := oldSym.loc
	newLoc := newSym.loc

	c := &m.Change{
		Type:        m.Modified,
		Kind:        newSym.kind,
		OldName:     oldSym.name,
		NewName:     newSym.name,
		OldLocation: &oldLoc,
		NewLocation: &newLoc,
		OldContent:  oldSym.full,
		NewContent:  newSym.full,
		Visibility:  newSym.vis,
	}

	c.Hints.WhitespaceOnly = goWhitespaceOnly(oldSym.full, newSym.full)
	c.Hints.SignatureAffecting = normalizeSpace(oldSym.sig) != normalizeSpace(newSym.sig)
	c.WhitespaceIssues = AnalyzeWhitespace(oldSym.full, newSym.full)

	if !c.Hints.WhitespaceOnly && oldSym.body != "" && newSym.body != "" && oldSym.body != newSym.body {
		c.Children = diffLineBlocks(file, oldSym.body, newSym.body, oldSym.bodyStartLine, newSym.bodyStartLine)
	}

	return c
}

func movedChange(oldSym, newSym symbol) *m.Change {
	oldLoc := oldSym.loc
	newLoc := newSym.loc

	c := &m.Change{
		Type:        m.Moved,
		Kind:        newSym.kind,
		OldName:     oldSym.name,
		NewName:     newSym.name,
		OldLocation: &oldLoc,
		NewLocation: &newLoc,
		Visibility:  newSym.vis,
	}

	// Reordering within one file never leaves the containing scope.
	c.Hints.SameScope = true

	return c
}

func renameChange(oldSym, newSym symbol) *m.Change {
	oldLoc := oldSym.loc
	newLoc := newSym.loc

	return &m.Change{
		Type:        m.Renamed,
		Kind:        newSym.kind,
		OldName:     oldSym.name,
		NewName:     newSym.name,
		OldLocation: &oldLoc,
		NewLocation: &newLoc,
		OldContent:  oldSym.full,
		NewContent:  newSym.full,
		Visibility:  newSym.vis,
	}
}

func addChange(s symbol) *m.Change {
	loc := s.loc

	c := &m.Change{
		Type:        m.Added,
		Kind:        s.kind,
		NewName:     s.name,
		NewLocation: &loc,
		NewContent:  s.full,
		Visibility:  s.vis,
	}

	// A whole new declaration changes the API surface.
	c.Hints.SignatureAffecting = true

	return c
}

func removeChange(s symbol) *m.Change {
	loc := s.loc

	c := &m.Change{
		Type:        m.Removed,
		Kind:        s.kind,
		OldName:     s.name,
		OldLocation: &loc,
		OldContent:  s.full,
		Visibility:  s.vis,
	}

	c.Hints.SignatureAffecting = true

	return c
}

// goWhitespaceOnly reports whether two Go fragments scan to identical
// token streams, so only formatting separates them. Unlike a textual
// comparison this keeps string literal contents intact: `"a b"` and
// `"ab"` are different tokens. Falls back to the generic line comparison
// when either fragment does not scan cleanly.
func goWhitespaceOnly(old, new string) bool {
	if old == new {
		return false
	}

	oldToks, oldOK := scanTokens(old)
	newToks, newOK := scanTokens(new)

	if !oldOK || !newOK {
		return IsWhitespaceOnly(old, new)
	}

	if len(oldToks) != len(newToks) {
		return false
	}

	for i := range oldToks {
		if oldToks[i] != newToks[i] {
			return false
		}
	}

	return true
}

func scanTokens(src string) ([]string, bool) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	clean := true

	var s scanner.Scanner
	s.Init(file, []byte(src), func(token.Position, string) { clean = false }, scanner.ScanComments)

	var toks []string

	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		// Auto-inserted semicolons carry "\n" as their literal; fold them
		// together with explicit ones so reflowing statements across lines
		// still compares equal token-wise.
		if tok == token.SEMICOLON {
			lit = ";"
		}

		toks = append(toks, tok.String()+"\x00"+lit)
	}

	return toks, clean
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
