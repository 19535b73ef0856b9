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

package adt

import (
	"golang.org/x/xerrors"

	"github.com/sliplang/slip/errors"
	"github.com/sliplang/slip/token"
)

// An ErrorCode classifies a machine error. All machine errors are fatal:
// nothing in the core catches them, and the process terminates after a
// single diagnostic.
type ErrorCode int

const (
	// An EvalError reports an expression the evaluator cannot process.
	EvalError ErrorCode = iota

	// A TypeError reports a runtime shape mismatch, such as applying a
	// non-function or destructuring a non-cons.
	TypeError

	// An UnboundError reports an atom with no binding in the environment.
	UnboundError

	// A ResourceError reports heap exhaustion.
	ResourceError
)

func (c ErrorCode) String() string {
	switch c {
	case EvalError:
		return "eval"
	case TypeError:
		return "type"
	case UnboundError:
		return "unbound"
	case ResourceError:
		return "resource"
	}
	return "unknown"
}

// A MachineError is an error raised by the heap or the evaluation machine.
// Machine errors carry no input position; the failing operation is named in
// the message.
type MachineError struct {
	Code ErrorCode
	errors.Message
}

func (e *MachineError) Position() token.Pos { return token.NoPos }

// Errf creates a MachineError with the given code and message.
func Errf(code ErrorCode, format string, args ...interface{}) errors.Error {
	return &MachineError{
		Code:    code,
		Message: errors.NewMessage(format, args),
	}
}

// CodeOf reports the machine error code of err, or EvalError and false if
// err is not a machine error.
func CodeOf(err error) (ErrorCode, bool) {
	var m *MachineError
	if xerrors.As(err, &m) {
		return m.Code, true
	}
	return EvalError, false
}
