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

package slip_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliplang/slip"
)

func run(t *testing.T, src string, opts ...slip.Option) (string, slip.Stats, error) {
	t.Helper()
	out := &bytes.Buffer{}
	i, err := slip.New(append([]slip.Option{slip.Output(out)}, opts...)...)
	require.NoError(t, err)
	defer i.Close()
	err = i.EvalString(src)
	return out.String(), i.Stats(), err
}

func TestEvalString(t *testing.T) {
	out, _, err := run(t, "(print_atom (quote Hello))")
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
}

func TestEvalSequence(t *testing.T) {
	out, _, err := run(t, `
		(print_atom (quote Hello))
		(print_atom (quote World))
	`)
	require.NoError(t, err)
	assert.Equal(t, "HelloWorld", out)
}

func TestClosure(t *testing.T) {
	out, _, err := run(t, "((fun (x (print_atom x))) (quote World))")
	require.NoError(t, err)
	assert.Equal(t, "World", out)
}

func TestParseError(t *testing.T) {
	_, _, err := run(t, "(print_atom (quote Hello)")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unexpected end of file")
}

func TestEvalError(t *testing.T) {
	_, _, err := run(t, "nope")
	require.Error(t, err)
	assert.ErrorContains(t, err, "unbound atom: nope")
}

func TestObjectLimit(t *testing.T) {
	// The predeclared environments alone do not fit in a tiny heap.
	_, err := slip.New(slip.ObjectLimit(4))
	require.Error(t, err)
	assert.ErrorContains(t, err, "object limit exceeded")
}

func TestGarbageIsReclaimed(t *testing.T) {
	src := strings.Repeat("((fun (x (print_atom x))) (quote Hi))\n", 100)
	out, stats, err := run(t, src, slip.ObjectLimit(512))
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("Hi", 100), out)
	assert.Greater(t, stats.Collections, int64(0))
	assert.Less(t, stats.Live, int64(512))
	assert.Greater(t, stats.Frees, int64(0))
}

func TestInterpretersCoexist(t *testing.T) {
	out1 := &bytes.Buffer{}
	out2 := &bytes.Buffer{}
	i1, err := slip.New(slip.Output(out1))
	require.NoError(t, err)
	defer i1.Close()
	i2, err := slip.New(slip.Output(out2))
	require.NoError(t, err)
	defer i2.Close()

	require.NoError(t, i1.EvalString("(print_atom (quote one))"))
	require.NoError(t, i2.EvalString("(print_atom (quote two))"))
	require.NoError(t, i1.EvalString("(print_atom (quote more))"))

	assert.Equal(t, "onemore", out1.String())
	assert.Equal(t, "two", out2.String())
}
