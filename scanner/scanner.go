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

// Package scanner implements a tokenizer for slip source text.
//
// The scanner reads its input a byte at a time and therefore blocks only on
// input availability, which makes it suitable for interactive use on a
// terminal.
package scanner

import (
	"bufio"
	"io"

	"github.com/sliplang/slip/errors"
	"github.com/sliplang/slip/token"
)

// A Scanner holds the state of the tokenizer. It must be initialized with
// Init before use.
type Scanner struct {
	r    *bufio.Reader
	file string

	// next byte location
	offset int
	line   int
	col    int
}

// Init prepares the scanner to tokenize src. The filename is only used in
// positions and diagnostics.
func (s *Scanner) Init(filename string, src io.Reader) {
	s.r = bufio.NewReader(src)
	s.file = filename
	s.offset = 0
	s.line = 1
	s.col = 1
}

func (s *Scanner) pos() token.Pos {
	return token.Pos{Filename: s.file, Offset: s.offset, Line: s.line, Column: s.col}
}

func (s *Scanner) readByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	s.offset++
	if b == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return b, nil
}

func (s *Scanner) unreadByte() {
	// unreadByte is only called for bytes that terminate a symbol, which
	// are never newlines that have already advanced the line counter.
	_ = s.r.UnreadByte()
	s.offset--
	s.col--
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Scan returns the next token in the input. At the end of the input it
// returns a token with kind token.EOF. A read failure other than io.EOF is
// reported as an error.
func (s *Scanner) Scan() (token.Token, errors.Error) {
	var b byte
	var err error
	for {
		b, err = s.readByte()
		if err == io.EOF {
			return token.Token{Kind: token.EOF, Pos: s.pos()}, nil
		}
		if err != nil {
			return token.Token{}, errors.Wrapf(err, s.pos(), "read error")
		}
		if !isSpace(b) {
			break
		}
	}

	pos := s.pos()
	pos.Offset--
	pos.Column--

	switch b {
	case '(':
		return token.Token{Kind: token.LPAREN, Pos: pos}, nil
	case ')':
		return token.Token{Kind: token.RPAREN, Pos: pos}, nil
	}

	// Symbols own their byte buffer, so each token gets a fresh slice.
	text := []byte{b}
	for {
		b, err = s.readByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return token.Token{}, errors.Wrapf(err, s.pos(), "read error")
		}
		if isSpace(b) {
			break
		}
		if b == '(' || b == ')' {
			s.unreadByte()
			break
		}
		text = append(text, b)
	}
	return token.Token{Kind: token.SYMBOL, Pos: pos, Text: text}, nil
}
