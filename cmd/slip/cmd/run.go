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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sliplang/slip"
)

// newRunCmd creates a new run command.
func newRunCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "evaluate a slip program",
		Long: `run evaluates the expressions of a slip program in order.

The program is read from the given file, or from standard input when no
file is given. Evaluation stops at the first error.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: mkRunE(c, runRun),
	}

	cmd.Flags().Int(string(flagLimit), 0,
		"maximum number of live heap objects (0 for the default)")
	cmd.Flags().Bool(string(flagStats), false,
		"print heap statistics after evaluation")

	return cmd
}

func runRun(cmd *Command, args []string) error {
	filename := "<stdin>"
	var src io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		filename = args[0]
		src = f
	}

	i, err := slip.New(
		slip.ObjectLimit(flagLimit.Int(cmd)),
		slip.Output(cmd.OutOrStdout()),
	)
	if err != nil {
		return err
	}
	defer i.Close()

	if err := i.Eval(filename, src); err != nil {
		return err
	}

	if flagStats.Bool(cmd) {
		printStats(cmd.OutOrStderr(), i.Stats())
	}
	return nil
}

func printStats(w io.Writer, s slip.Stats) {
	fmt.Fprintf(w, "allocations: %s\n", humanize.Comma(s.Allocs))
	fmt.Fprintf(w, "frees:       %s\n", humanize.Comma(s.Frees))
	fmt.Fprintf(w, "live:        %s (max %s)\n",
		humanize.Comma(s.Live), humanize.Comma(s.MaxLive))
	fmt.Fprintf(w, "collections: %s\n", humanize.Comma(s.Collections))
}
