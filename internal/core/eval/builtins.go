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

// popApply applies the function on top of the operand stack to the
// operands below it. The function is rooted while it runs; its own apply
// routine consumes the evaluated argument.
func (e *Evaluator) popApply(c *adt.OpContext, _ adt.Object) errors.Error {
	v, err := c.PopOperand()
	if err != nil {
		return err
	}
	f, ok := v.(*adt.Func)
	if !ok {
		return adt.Errf(adt.TypeError, "apply: not a function")
	}
	var o adt.Object = f
	c.Heap().PushRoot(&o)
	err = f.Apply(c)
	c.Heap().PopRoot()
	return err
}

// quoteApply implements the quote form. The unevaluated argument itself
// becomes the result: the identical subtree is pushed, so reference
// sharing with the source expression is observable by identity.
func (e *Evaluator) quoteApply(c *adt.OpContext, _ adt.Object) errors.Error {
	v, err := c.PopOperand()
	if err != nil {
		return err
	}
	pair, ok := v.(*adt.Cons)
	if !ok {
		return adt.Errf(adt.TypeError, "cons expected")
	}
	return c.PushOperand(pair.Tail)
}

// funApply implements the fun form. It pops cons(envs, (param body)) and
// pushes a closure whose payload is that very pair, capturing the
// environments together with the parameter and body.
func (e *Evaluator) funApply(c *adt.OpContext, _ adt.Object) errors.Error {
	v, err := c.PopOperand()
	if err != nil {
		return err
	}
	pair, ok := v.(*adt.Cons)
	if !ok {
		return adt.Errf(adt.TypeError, "cons expected")
	}
	tree, ok := pair.Tail.(*adt.Cons)
	if !ok {
		return adt.Errf(adt.TypeError, "cons expected")
	}
	if _, ok := tree.Head.(*adt.Atom); !ok {
		return adt.Errf(adt.TypeError, "fun: param should be an atom")
	}
	f, err := c.Heap().AllocFunc(e.funCall, v)
	if err != nil {
		return err
	}
	return c.PushOperand(f)
}

// funCall applies a closure: it pops the evaluated argument, extends the
// captured env with param bound to it, and queues evaluation of the body
// in the extended environments.
func (e *Evaluator) funCall(c *adt.OpContext, data adt.Object) errors.Error {
	pair, ok := data.(*adt.Cons)
	if !ok {
		return adt.Errf(adt.TypeError, "cons expected")
	}
	envs, ok := pair.Head.(*adt.Cons)
	if !ok {
		return adt.Errf(adt.TypeError, "cons expected")
	}
	tree, ok := pair.Tail.(*adt.Cons)
	if !ok {
		return adt.Errf(adt.TypeError, "cons expected")
	}
	param, body := tree.Head, tree.Tail

	arg, err := c.PopOperand()
	if err != nil {
		return err
	}

	h := c.Heap()
	binding, err := h.AllocCons(param, arg)
	if err != nil {
		return err
	}
	env2, err := h.AllocCons(binding, envs.Tail)
	if err != nil {
		return err
	}
	envs2, err := h.AllocCons(envs.Head, env2)
	if err != nil {
		return err
	}
	return e.pushEval(c, envs2, body)
}

// printAtom writes the popped atom's bytes to the evaluator's output, with
// no separator, and yields nil.
func (e *Evaluator) printAtom(c *adt.OpContext, _ adt.Object) errors.Error {
	v, err := c.PopOperand()
	if err != nil {
		return err
	}
	a, ok := v.(*adt.Atom)
	if !ok {
		return adt.Errf(adt.TypeError, "print_atom: argument is not an atom")
	}
	if _, err := e.out.Write(a.Bytes()); err != nil {
		return errors.Promote(err, "print_atom")
	}
	return c.PushOperand(c.Nil())
}
