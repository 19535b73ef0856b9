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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sliplang/slip/errors"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		err := f(c, args)
		if err != nil {
			exitOnErr(c, err)
			return ErrPrintedError
		}
		return nil
	}
}

// newRootCmd creates the base command when called without any subcommands.
func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "slip",
		Short: "slip evaluates slip programs",
		Long: `slip is an interpreter for a tiny expression language of atoms,
pairs, quoting and single-parameter functions.

A program is a sequence of expressions read from a file or from standard
input and evaluated in order. Output is produced only by print_atom.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: cmd, root: cmd}

	subCommands := []*cobra.Command{
		newRunCmd(c),
		newVersionCmd(c),
	}
	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}

	return c
}

// Main runs the slip tool and returns the code for passing to os.Exit.
func Main() int {
	err := mainErr(os.Args[1:])
	if err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func mainErr(args []string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

// A Command wraps the currently active cobra command.
type Command struct {
	*cobra.Command

	root *cobra.Command
}

// Stderr returns the writer that should be used for error messages.
func (c *Command) Stderr() io.Writer {
	return c.OutOrStderr()
}

// ErrPrintedError indicates error messages have been printed to stderr.
var ErrPrintedError = errors.New("terminating because of errors")

var errFormat = color.New(color.FgRed)

// exitOnErr prints err to the command's error stream. The caller reports
// ErrPrintedError in its place so that it is not printed twice.
func exitOnErr(c *Command, err error) {
	if err == nil {
		return
	}
	errors.Print(c.Stderr(), err, &errors.Config{
		Format: errFormat.FprintfFunc(),
	})
}
