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

// Package errors defines shared types for handling slip errors.
//
// All errors produced by the interpreter implement the Error interface,
// which extends the standard error interface with a source position and a
// structured message. Errors may be combined into lists with Append and
// rendered for end users with Print.
package errors

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/xerrors"

	"github.com/sliplang/slip/token"
)

// New is a convenience wrapper for errors.New in the core library.
// It does not add a message type or position.
func New(msg string) error {
	return errors.New(msg)
}

// A Message implements the error interface as well as Msg, allowing
// internationalized messages at a later stage. Messages are formatted
// lazily.
type Message struct {
	format string
	args   []interface{}
}

// NewMessage creates an error message for human consumption. The arguments
// are for later consumption, allowing the message to be localized at a later
// time. The passed argument list should not be modified.
func NewMessage(format string, args []interface{}) Message {
	return Message{format: format, args: args}
}

// Msg returns the format for the message and its arguments.
func (m *Message) Msg() (format string, args []interface{}) {
	return m.format, m.args
}

func (m *Message) Error() string {
	return fmt.Sprintf(m.format, m.args...)
}

// Error is the common error interface of the interpreter.
type Error interface {
	// Position returns the primary position of the error, or token.NoPos if
	// the error is not associated with an input location.
	Position() token.Pos

	// Msg returns the unformatted error message and its arguments.
	Msg() (format string, args []interface{})

	// Error reports the formatted error message.
	Error() string
}

// Newf creates an Error with the given position and message.
func Newf(p token.Pos, format string, args ...interface{}) Error {
	return &posError{
		pos:     p,
		Message: NewMessage(format, args),
	}
}

// Wrapf creates an Error annotating err with the given position and message.
// The result unwraps to err.
func Wrapf(err error, p token.Pos, format string, args ...interface{}) Error {
	return &wrapped{
		main: &posError{
			pos:     p,
			Message: NewMessage(format, args),
		},
		wrap: err,
	}
}

// Promote converts a regular Go error to an Error if it is not one already,
// using msg as a prefix for the original message.
func Promote(err error, msg string) Error {
	switch x := err.(type) {
	case Error:
		return x
	default:
		if msg == "" {
			return Wrapf(err, token.NoPos, "%v", err)
		}
		return Wrapf(err, token.NoPos, "%s: %v", msg, err)
	}
}

type posError struct {
	pos token.Pos
	Message
}

func (e *posError) Position() token.Pos { return e.pos }

type wrapped struct {
	main *posError
	wrap error
}

func (e *wrapped) Position() token.Pos                 { return e.main.pos }
func (e *wrapped) Msg() (string, []interface{})        { return e.main.Msg() }
func (e *wrapped) Error() string                       { return e.main.Error() }
func (e *wrapped) Unwrap() error                       { return e.wrap }
func (e *wrapped) Is(target error) bool                { return xerrors.Is(e.wrap, target) }
func (e *wrapped) FormatError(p xerrors.Printer) error { p.Print(e.main.Error()); return e.wrap }

// Append combines two errors, flattening any error lists. The result
// preserves the order in which the errors were added.
func Append(a, b Error) Error {
	switch x := a.(type) {
	case nil:
		return b
	case list:
		return appendToList(x, b)
	default:
		return appendToList(list{x}, b)
	}
}

// Errors reports the individual errors associated with an error, unwrapping
// error lists. A nil error yields a nil slice.
func Errors(err error) []Error {
	switch x := err.(type) {
	case nil:
		return nil
	case list:
		return x
	case Error:
		return []Error{x}
	default:
		return []Error{Promote(err, "")}
	}
}

type list []Error

func appendToList(a list, b Error) list {
	switch x := b.(type) {
	case nil:
		return a
	case list:
		return append(a, x...)
	default:
		return append(a, x)
	}
}

func (p list) Position() token.Pos {
	if len(p) == 0 {
		return token.NoPos
	}
	return p[0].Position()
}

func (p list) Msg() (format string, args []interface{}) {
	if len(p) == 0 {
		return "", nil
	}
	return p[0].Msg()
}

func (p list) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
	}
}

// sanitize sorts the errors by position and removes duplicate messages
// reported at the same location.
func (p list) sanitize() list {
	if len(p) < 2 {
		return p
	}
	a := make(list, len(p))
	copy(a, p)
	sort.SliceStable(a, func(i, j int) bool {
		return comparePos(a[i].Position(), a[j].Position())
	})
	out := a[:1]
	for _, e := range a[1:] {
		last := out[len(out)-1]
		if e.Position() == last.Position() && e.Error() == last.Error() {
			continue
		}
		out = append(out, e)
	}
	return out
}

func comparePos(a, b token.Pos) bool {
	if a.Filename != b.Filename {
		return a.Filename < b.Filename
	}
	return a.Offset < b.Offset
}

// A Config defines parameters for printing.
type Config struct {
	// Format formats the given string and arguments and writes it to w.
	// It is used for all printing.
	Format func(w io.Writer, format string, args ...interface{})
}

// Print writes a user-friendly rendering of err to w. Error lists are
// printed one error per line, sorted by position.
func Print(w io.Writer, err error, cfg *Config) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Format == nil {
		cfg.Format = func(w io.Writer, format string, args ...interface{}) {
			fmt.Fprintf(w, format, args...)
		}
	}
	var all list = Errors(err)
	for _, e := range all.sanitize() {
		printError(w, e, cfg)
	}
}

// Details is like Print, but returns the rendering as a string.
func Details(err error, cfg *Config) string {
	w := &strings.Builder{}
	Print(w, err, cfg)
	return w.String()
}

func printError(w io.Writer, err Error, cfg *Config) {
	if err == nil {
		return
	}
	if pos := err.Position(); pos.IsValid() {
		cfg.Format(w, "%s: %s\n", pos, err.Error())
	} else {
		cfg.Format(w, "%s\n", err.Error())
	}
}
