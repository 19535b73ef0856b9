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

package parser_test

import (
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliplang/slip/errors"
	"github.com/sliplang/slip/internal/core/adt"
	"github.com/sliplang/slip/internal/core/debug"
	"github.com/sliplang/slip/parser"
)

func parseAll(t *testing.T, src string) ([]adt.Object, *adt.Heap, error) {
	t.Helper()
	h := adt.NewHeap(100000)
	p := parser.New(h, "test.slip", strings.NewReader(src))
	var exprs []adt.Object
	for {
		expr, err := p.ParseExpr()
		if err == io.EOF {
			return exprs, h, nil
		}
		if err != nil {
			return exprs, h, err
		}
		exprs = append(exprs, expr)
	}
}

func TestParseExpr(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"hello", "hello"},
		{"(a b)", "(a b)"},
		{"(a (b c))", "(a (b c))"},
		{"((a b) c)", "((a b) c)"},
		{"(print_atom (quote Hello))", "(print_atom (quote Hello))"},
		{"(fun (x (print_atom x)))", "(fun (x (print_atom x)))"},
		{"  ( a\n\tb )  ", "(a b)"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			exprs, _, err := parseAll(t, tc.in)
			require.NoError(t, err)
			require.Len(t, exprs, 1)
			if diff := cmp.Diff(tc.want, debug.ObjectString(exprs[0])); diff != "" {
				t.Errorf("unexpected tree (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSequence(t *testing.T) {
	exprs, _, err := parseAll(t, "(a b) c (d e)")
	require.NoError(t, err)
	require.Len(t, exprs, 3)
	assert.Equal(t, "(a b)", debug.ObjectString(exprs[0]))
	assert.Equal(t, "c", debug.ObjectString(exprs[1]))
	assert.Equal(t, "(d e)", debug.ObjectString(exprs[2]))
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantPos string
	}{
		{"(", "unexpected end of file, expected expression", "test.slip:1:2"},
		{"(a", "unexpected end of file, expected expression", "test.slip:1:3"},
		{"(a b", "unexpected end of file, expected ')'", "test.slip:1:5"},
		{")", "unexpected ')'", "test.slip:1:1"},
		{"(a b c)", "missing ')': found c", "test.slip:1:6"},
		{"(a b (", "unexpected end of file, expected expression", "test.slip:1:7"},
		{"(()", "unexpected ')'", "test.slip:1:3"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			_, _, err := parseAll(t, tc.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
			e, ok := err.(errors.Error)
			require.True(t, ok)
			assert.Equal(t, tc.wantPos, e.Position().String())
		})
	}
}

func TestParseTreesAreLive(t *testing.T) {
	exprs, h, err := parseAll(t, "(a (b c))")
	require.NoError(t, err)

	// Rooting the parsed tree and collecting keeps exactly its five nodes
	// plus the heap's nil singleton.
	root := exprs[0]
	h.PushRoot(&root)
	defer h.PopRoot()
	h.Collect()
	assert.Equal(t, 6, h.Live())
	assert.Equal(t, "(a (b c))", debug.ObjectString(root))
}

func TestParseAtomOwnsBuffer(t *testing.T) {
	exprs, _, err := parseAll(t, "(abc abc)")
	require.NoError(t, err)

	pair := exprs[0].(*adt.Cons)
	x := pair.Head.(*adt.Atom)
	y := pair.Tail.(*adt.Atom)
	assert.True(t, x.Equal(y))
	assert.NotSame(t, &x.Bytes()[0], &y.Bytes()[0])
}
