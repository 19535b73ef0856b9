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

// Package debug prints a given heap object in source form.
//
// Atoms print as their bytes, pairs as parenthesized head and tail, and
// functions, which have no source syntax, as <function>. The output of an
// expression that was produced by the parser reads back as the original
// source, which makes the format suitable for tests and diagnostics.
package debug

import (
	"io"
	"strings"

	"github.com/sliplang/slip/internal/core/adt"
)

// maxDepth bounds the printed nesting. Closure environments can be cyclic,
// so the printer must not follow references indefinitely.
const maxDepth = 100

// WriteObject writes the source rendering of o to w.
func WriteObject(w io.Writer, o adt.Object) {
	p := printer{w: w}
	p.object(o, 0)
}

// ObjectString returns the source rendering of o.
func ObjectString(o adt.Object) string {
	b := &strings.Builder{}
	WriteObject(b, o)
	return b.String()
}

type printer struct {
	w io.Writer
}

func (p *printer) str(s string) {
	io.WriteString(p.w, s)
}

func (p *printer) object(o adt.Object, depth int) {
	if depth > maxDepth {
		p.str("...")
		return
	}
	switch x := o.(type) {
	case nil:
		p.str("<nil>")
	case *adt.Nil:
		p.str("()")
	case *adt.Atom:
		p.w.Write(x.Bytes())
	case *adt.Cons:
		p.str("(")
		p.object(x.Head, depth+1)
		p.str(" ")
		p.object(x.Tail, depth+1)
		p.str(")")
	case *adt.Func:
		p.str("<function>")
	default:
		p.str("<unknown>")
	}
}
