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

package eval

import (
	"github.com/sliplang/slip/errors"
	"github.com/sliplang/slip/internal/core/adt"
)

// evalStep is the continuation that evaluates one expression. Its data
// payload is cons(envs, expr), where envs is cons(forms, env).
//
// An atom evaluates to its binding in env. A pair (f a) whose head is an
// atom bound in forms hands the unevaluated argument to the form directly,
// as a tail call. Any other pair queues three continuations that, popped in
// LIFO order, evaluate the argument, evaluate the function expression, and
// apply the result.
func (e *Evaluator) evalStep(c *adt.OpContext, data adt.Object) errors.Error {
	pair, ok := data.(*adt.Cons)
	if !ok {
		return adt.Errf(adt.TypeError, "cons expected")
	}
	envs, ok := pair.Head.(*adt.Cons)
	if !ok {
		return adt.Errf(adt.TypeError, "cons expected")
	}
	expr := pair.Tail

	switch x := expr.(type) {
	case *adt.Atom:
		v, err := lookup(envs.Tail, x)
		if err != nil {
			return err
		}
		return c.PushOperand(v)

	case *adt.Cons:
		fexpr, arg := x.Head, x.Tail
		if name, ok := fexpr.(*adt.Atom); ok {
			f, found, err := lookupForm(envs.Head, name)
			if err != nil {
				return err
			}
			if found {
				// A form receives its argument unevaluated, paired with
				// the current environments. No apply continuation is
				// queued: this is what makes calls in tail position run
				// in constant space.
				od, err := c.Heap().AllocCons(envs, arg)
				if err != nil {
					return err
				}
				if err := c.PushOperand(od); err != nil {
					return err
				}
				return f.Apply(c)
			}
		}
		if err := e.pushPopApply(c); err != nil {
			return err
		}
		if err := e.pushEval(c, envs, fexpr); err != nil {
			return err
		}
		return e.pushEval(c, envs, arg)

	default:
		return adt.Errf(adt.EvalError, "cannot evaluate: not an atom or a cons")
	}
}

// pushEval queues the evaluation of expr in envs. Both arguments must be
// reachable from a root across the internal allocations; in practice they
// are part of the running continuation's payload, which Run keeps rooted.
func (e *Evaluator) pushEval(c *adt.OpContext, envs, expr adt.Object) errors.Error {
	h := c.Heap()
	data, err := h.AllocCons(envs, expr)
	if err != nil {
		return err
	}
	f, err := h.AllocFunc(e.evalStep, data)
	if err != nil {
		return err
	}
	return c.PushCont(f)
}

// pushPopApply queues a continuation that applies the next operand to be
// pushed.
func (e *Evaluator) pushPopApply(c *adt.OpContext) errors.Error {
	f, err := c.Heap().AllocFunc(e.popApply, c.Nil())
	if err != nil {
		return err
	}
	return c.PushCont(f)
}

// lookup walks the association list env for the value bound to name.
func lookup(env adt.Object, name *adt.Atom) (adt.Object, errors.Error) {
	for {
		cell, ok := env.(*adt.Cons)
		if !ok {
			return nil, adt.Errf(adt.UnboundError, "unbound atom: %s", name)
		}
		b, ok := cell.Head.(*adt.Cons)
		if !ok {
			return nil, adt.Errf(adt.TypeError, "cons expected")
		}
		key, ok := b.Head.(*adt.Atom)
		if !ok {
			return nil, adt.Errf(adt.TypeError, "atom_equals: atoms expected")
		}
		if key.Equal(name) {
			return b.Tail, nil
		}
		env = cell.Tail
	}
}

// lookupForm is like lookup over the forms list, but a missing binding is
// not an error: it simply means the application is not a form invocation.
func lookupForm(forms adt.Object, name *adt.Atom) (*adt.Func, bool, errors.Error) {
	for {
		cell, ok := forms.(*adt.Cons)
		if !ok {
			return nil, false, nil
		}
		b, ok := cell.Head.(*adt.Cons)
		if !ok {
			return nil, false, adt.Errf(adt.TypeError, "cons expected")
		}
		key, ok := b.Head.(*adt.Atom)
		if !ok {
			return nil, false, adt.Errf(adt.TypeError, "atom_equals: atoms expected")
		}
		if key.Equal(name) {
			f, ok := b.Tail.(*adt.Func)
			if !ok {
				return nil, false, adt.Errf(adt.TypeError, "apply: not a function")
			}
			return f, true, nil
		}
		forms = cell.Tail
	}
}
