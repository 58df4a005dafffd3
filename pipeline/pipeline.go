/*
File    : kube-interpreter/pipeline/pipeline.go
*/

// Package pipeline implements the wave-scheduled concurrent orchestrator
// that drives per-file lexing and parsing, discovers imports and
// in-tree class references, and loops until the transitive closure of
// reachable files is stable (spec section 4.4). The registry and the
// "currently lexing" set are touched only from the goroutine that calls
// Run; worker goroutines spawned per wave receive immutable copies of
// path/context strings and report back through a result slice, never
// touching shared state directly.
package pipeline

import (
	"context"
	"os"

	"github.com/akashmaji946/kube-interpreter/ast"
	"github.com/akashmaji946/kube-interpreter/diagnostic"
	"github.com/akashmaji946/kube-interpreter/lexer"
	"github.com/akashmaji946/kube-interpreter/parser"
	"github.com/akashmaji946/kube-interpreter/registry"
	"github.com/akashmaji946/kube-interpreter/token"
	"golang.org/x/sync/errgroup"
)

// Orchestrator runs the lex/parse pipeline over one root file and every
// file it transitively reaches through imports and class references.
type Orchestrator struct {
	reg    *registry.Registry
	pool   *ast.Pool
	lexing map[token.FileIndex]bool
}

// New returns an Orchestrator backed by reg and allocating AST nodes
// from pool.
func New(reg *registry.Registry, pool *ast.Pool) *Orchestrator {
	return &Orchestrator{
		reg:    reg,
		pool:   pool,
		lexing: make(map[token.FileIndex]bool),
	}
}

// Registry returns the registry the orchestrator is populating.
func (o *Orchestrator) Registry() *registry.Registry {
	return o.reg
}

type lexResult struct {
	file  token.FileIndex
	stack *token.TokenStack
	err   error
}

type parseResult struct {
	file    token.FileIndex
	root    *ast.Node
	imports []string
	err     error
}

// Run registers rootPath, then lexes and parses it and every file it
// transitively reaches, wave by wave: each wave submits every pending
// lex and parse work item concurrently, waits for the wave to finish,
// then processes notifications serially on this goroutine, discovering
// the next wave's work before looping. It returns the first fatal error
// encountered; on success, every reachable file's registry slot carries
// both a TokenStack and an AST.
func (o *Orchestrator) Run(rootPath string) error {
	rootFile, err := o.reg.DiscoverFile(rootPath)
	if err != nil {
		return err
	}

	lexQueue := []token.FileIndex{rootFile}
	o.lexing[rootFile] = true
	var parseQueue []token.FileIndex

	for len(lexQueue) > 0 || len(parseQueue) > 0 {
		lexResults := make([]lexResult, len(lexQueue))
		parseResults := make([]parseResult, len(parseQueue))

		g, _ := errgroup.WithContext(context.Background())
		for i, file := range lexQueue {
			i, file := i, file
			entry := o.reg.File(file)
			path, ctx := entry.Path, entry.Path
			g.Go(func() error {
				stack, lexErr := lexOne(file, path, ctx)
				lexResults[i] = lexResult{file: file, stack: stack, err: lexErr}
				return nil
			})
		}
		for i, file := range parseQueue {
			i, file := i, file
			entry := o.reg.File(file)
			stack, ctx := entry.Stack, entry.Path
			g.Go(func() error {
				root, imports, parseErr := parser.Parse(stack, ctx, o.pool)
				parseResults[i] = parseResult{file: file, root: root, imports: imports, err: parseErr}
				return nil
			})
		}
		_ = g.Wait() // workers never return a non-nil error themselves; failures ride in the result slices

		var nextLex []token.FileIndex
		var nextParse []token.FileIndex

		for _, r := range lexResults {
			delete(o.lexing, r.file)
			if r.err != nil {
				return r.err
			}
			o.reg.File(r.file).Stack = r.stack
			nextParse = append(nextParse, r.file)
		}

		for _, r := range parseResults {
			if r.err != nil {
				return r.err
			}
			entry := o.reg.File(r.file)
			entry.AST = r.root

			for _, importLit := range r.imports {
				// Resolved absolute-or-relative-to-the-process's-working-directory
				// (spec section 4.1): DiscoverDirectory itself calls
				// filepath.Abs, which joins a relative path against os.Getwd.
				dirIdx, err := o.reg.DiscoverDirectory(importLit, false)
				if err != nil {
					return err
				}
				entry.Imports = append(entry.Imports, dirIdx)
			}

			for _, class := range ast.Classes(r.root) {
				name := class.Name()
				found, ok := o.reg.FindInDirectory(entry.Directory, name)
				if !ok {
					for _, dirIdx := range entry.Imports {
						if f, ok2 := o.reg.FindInDirectory(dirIdx, name); ok2 {
							found, ok = f, true
							break
						}
					}
				}
				if !ok {
					continue // no matching file: refers to the enclosing file or a built-in
				}
				if o.reg.File(found).Stack != nil || o.lexing[found] {
					continue
				}
				o.lexing[found] = true
				nextLex = append(nextLex, found)
			}
		}

		lexQueue, parseQueue = nextLex, nextParse
	}

	return nil
}

// lexOne reads path's contents and lexes them, stamping fileIndex into
// every produced token.
func lexOne(fileIndex token.FileIndex, path, context string) (*token.TokenStack, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &diagnostic.CannotOpen{Path: path, Err: err}
	}
	return lexer.Lex(fileIndex, src, context)
}
