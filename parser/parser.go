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

// Package parser builds heap expression trees from a token stream.
//
// The grammar is
//
//	EXPR ::= SYMBOL | '(' EXPR EXPR ')'
//
// A symbol becomes a fresh atom; a parenthesized pair becomes a cons of its
// two sub-expressions, so nested pairs form right-branching trees. The
// trees are ordinary heap objects: intermediate nodes are rooted across the
// allocations of their siblings so that a collection triggered mid-parse
// cannot reclaim them.
package parser

import (
	"io"

	"github.com/sliplang/slip/errors"
	"github.com/sliplang/slip/internal/core/adt"
	"github.com/sliplang/slip/scanner"
	"github.com/sliplang/slip/token"
)

// A Parser reads expressions from a token stream onto a heap.
type Parser struct {
	s    scanner.Scanner
	heap *adt.Heap
}

// New creates a Parser reading from src. The filename is only used in
// error positions.
func New(h *adt.Heap, filename string, src io.Reader) *Parser {
	p := &Parser{heap: h}
	p.s.Init(filename, src)
	return p
}

// ParseExpr parses the next expression. At the end of the input it returns
// io.EOF; the returned tree is not rooted.
func (p *Parser) ParseExpr() (adt.Object, error) {
	tok, err := p.s.Scan()
	if err != nil {
		return nil, err
	}
	if tok.Kind == token.EOF {
		return nil, io.EOF
	}
	return p.expr(tok)
}

// expr parses one expression starting at tok.
func (p *Parser) expr(tok token.Token) (adt.Object, error) {
	switch tok.Kind {
	case token.SYMBOL:
		return p.heap.AllocAtom(tok.Text)

	case token.LPAREN:
		head, err := p.next("expression")
		if err != nil {
			return nil, err
		}
		var a adt.Object
		a, err = p.expr(head)
		if err != nil {
			return nil, err
		}
		p.heap.PushRoot(&a)
		b, err := p.pair(a)
		p.heap.PopRoot()
		return b, err

	case token.RPAREN:
		return nil, errors.Newf(tok.Pos, "unexpected ')'")
	}
	return nil, errors.Newf(tok.Pos, "unexpected %s", tok.Kind)
}

// pair parses the second element of a pair whose rooted first element is a,
// consumes the closing parenthesis, and allocates the cons.
func (p *Parser) pair(a adt.Object) (adt.Object, error) {
	tok, err := p.next("expression")
	if err != nil {
		return nil, err
	}
	b, err := p.expr(tok)
	if err != nil {
		return nil, err
	}
	rparen, err := p.next("')'")
	if err != nil {
		return nil, err
	}
	if rparen.Kind != token.RPAREN {
		return nil, errors.Newf(rparen.Pos, "missing ')': found %s", rparen)
	}
	return p.heap.AllocCons(a, b)
}

// next scans a token that must not be the end of the input.
func (p *Parser) next(want string) (token.Token, error) {
	tok, err := p.s.Scan()
	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind == token.EOF {
		return token.Token{}, errors.Newf(tok.Pos, "unexpected end of file, expected %s", want)
	}
	return tok, nil
}
