// Copyright 2025 The Slip Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package slip evaluates slip programs.
//
// Slip is a tiny expression language of atoms, pairs, quoting and single
// parameter functions. Its engineering interest is under the hood: all
// values live on a managed heap reclaimed by a precise Schorr-Waite
// mark-sweep collector, and evaluation runs as an explicit continuation
// loop that never recurses on the host stack.
//
// An Interpreter owns one heap and one evaluator. Errors are fatal to the
// program being evaluated: the first one aborts evaluation and is returned.
package slip

import (
	"io"
	"strings"

	"golang.org/x/xerrors"

	"github.com/sliplang/slip/internal/core/eval"
	"github.com/sliplang/slip/internal/core/runtime"
	"github.com/sliplang/slip/parser"
)

// An Interpreter evaluates slip programs against a private heap. Separate
// interpreters are fully independent and may coexist.
type Interpreter struct {
	r *runtime.Runtime
	e *eval.Evaluator
}

// An Option configures an Interpreter.
type Option func(*config)

type config struct {
	limit int
	out   io.Writer
}

// ObjectLimit sets the number of live heap objects at which allocation
// triggers a collection, and beyond which it fails. The default is
// 10000.
func ObjectLimit(n int) Option {
	return func(c *config) { c.limit = n }
}

// Output redirects the output of print_atom, which defaults to standard
// output.
func Output(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// New creates an Interpreter.
func New(opts ...Option) (*Interpreter, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	r := runtime.NewWithLimit(cfg.limit)
	e, err := eval.New(r)
	if err != nil {
		return nil, err
	}
	if cfg.out != nil {
		e.SetOutput(cfg.out)
	}
	return &Interpreter{r: r, e: e}, nil
}

// Close releases the interpreter's evaluation state. The interpreter must
// not be used afterwards.
func (i *Interpreter) Close() { i.e.Close() }

// Eval parses and evaluates the expressions in src, one after the other,
// until the input is exhausted. The filename is only used in error
// positions. The first error aborts evaluation.
func (i *Interpreter) Eval(filename string, src io.Reader) error {
	p := parser.New(i.r.Heap(), filename, src)
	for {
		expr, err := p.ParseExpr()
		if xerrors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := i.e.EvalExpr(expr); err != nil {
			return err
		}
	}
}

// EvalString is Eval for a source string.
func (i *Interpreter) EvalString(src string) error {
	return i.Eval("", strings.NewReader(src))
}

// Stats describes the allocation and collection activity of the
// interpreter's heap.
type Stats struct {
	Allocs      int64
	Frees       int64
	Collections int64
	Live        int64
	MaxLive     int64
}

// Stats returns a snapshot of the heap counters.
func (i *Interpreter) Stats() Stats {
	s := i.r.Heap().Stats()
	return Stats{
		Allocs:      s.Allocs,
		Frees:       s.Frees,
		Collections: s.Collections,
		Live:        s.Live,
		MaxLive:     s.MaxLive,
	}
}
