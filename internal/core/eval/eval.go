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

// Package eval implements the slip evaluator.
//
// Evaluation is driven by an explicit continuation loop: Run repeatedly
// pops a continuation from the machine's continuation stack and applies it.
// A step may push operands and further continuations, but control always
// returns to the loop before they execute, so the host stack stays bounded
// regardless of program depth. Form invocation pushes no apply
// continuation, which makes calls in tail position run in constant space.
//
// Two parallel association lists make up an environment: forms, consulted
// only when the head of an application is a bare atom, and env, used for
// ordinary variable lookup. A fun parameter can therefore share a name with
// a form without ambiguity: argument positions always resolve through env.
package eval

import (
	"io"
	"os"

	"github.com/sliplang/slip/errors"
	"github.com/sliplang/slip/internal/core/adt"
	"github.com/sliplang/slip/internal/core/runtime"
)

// An Evaluator owns the machine state for evaluating expressions against
// the predeclared environments: quote and fun in forms, print_atom in env.
type Evaluator struct {
	r   *runtime.Runtime
	ctx *adt.OpContext
	out io.Writer

	// forms and env are rooted for the lifetime of the evaluator.
	forms adt.Object
	env   adt.Object
}

// New creates an Evaluator on the given runtime and builds its predeclared
// environments on the heap. Close must be called to drop the evaluator's
// collection roots.
func New(r *runtime.Runtime) (*Evaluator, errors.Error) {
	h := r.Heap()
	e := &Evaluator{r: r, out: os.Stdout}
	e.forms = h.Nil()
	e.env = h.Nil()
	h.PushRoot(&e.forms)
	h.PushRoot(&e.env)
	e.ctx = adt.NewOpContext(h)

	if err := e.boot(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// Close releases the evaluator's collection roots. The evaluator must not
// be used afterwards.
func (e *Evaluator) Close() {
	e.ctx.Release()
	h := e.r.Heap()
	h.PopRoot() // env
	h.PopRoot() // forms
}

// SetOutput redirects the output of print_atom, which defaults to standard
// output.
func (e *Evaluator) SetOutput(w io.Writer) { e.out = w }

// Context returns the evaluator's machine context.
func (e *Evaluator) Context() *adt.OpContext { return e.ctx }

func (e *Evaluator) boot() errors.Error {
	if err := e.bind(&e.forms, "quote", e.quoteApply); err != nil {
		return err
	}
	if err := e.bind(&e.forms, "fun", e.funApply); err != nil {
		return err
	}
	return e.bind(&e.env, "print_atom", e.printAtom)
}

// bind prepends a (name . function) pair to the association list in the
// rooted cell at envp.
func (e *Evaluator) bind(envp *adt.Object, name string, apply adt.Applier) errors.Error {
	h := e.r.Heap()
	atom, err := h.AllocAtom([]byte(name))
	if err != nil {
		return err
	}
	var key adt.Object = atom
	h.PushRoot(&key)
	f, err := h.AllocFunc(apply, h.Nil())
	h.PopRoot()
	if err != nil {
		return err
	}
	binding, err := h.AllocCons(key, f)
	if err != nil {
		return err
	}
	cell, err := h.AllocCons(binding, *envp)
	if err != nil {
		return err
	}
	*envp = cell
	return nil
}

// EvalExpr evaluates a single expression tree and returns its value. The
// returned object is not rooted.
func (e *Evaluator) EvalExpr(expr adt.Object) (adt.Object, errors.Error) {
	h := e.r.Heap()
	h.PushRoot(&expr)
	err := e.seed(expr)
	h.PopRoot()
	if err != nil {
		return nil, err
	}
	if err := e.Run(); err != nil {
		return nil, err
	}
	return e.ctx.PopOperand()
}

// seed queues the evaluation of expr in the predeclared environments.
func (e *Evaluator) seed(expr adt.Object) errors.Error {
	h := e.r.Heap()
	envs, err := h.AllocCons(e.forms, e.env)
	if err != nil {
		return err
	}
	return e.pushEval(e.ctx, envs, expr)
}

// Run pops and applies continuations until the continuation stack is
// empty. The popped continuation is rooted while it runs; everything else
// it needs is reachable through its data payload.
func (e *Evaluator) Run() errors.Error {
	h := e.r.Heap()
	for {
		f, ok, err := e.ctx.PopCont()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		var k adt.Object = f
		h.PushRoot(&k)
		err = f.Apply(e.ctx)
		h.PopRoot()
		if err != nil {
			return err
		}
	}
}
