/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rootCmd is itself the run command: `cholla <parameter-file> [key=value]...`
// per spec.md §6's CLI contract, rather than a bare dispatcher over
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "cholla <parameter-file> [key=value]...",
	Short: "Run a grid-based fluid-dynamics simulation from a parameter file",
	Long: `cholla reads a ParameterMap-style parameter file, builds the simulation
it describes, and runs it to completion or to the first fatal error.

Any "key=value" arguments after the parameter file override entries from
the file, exactly like a line inside it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulation,
}

// Execute runs rootCmd, returning the error it produced (if any) so main can
// translate it into a process exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().Bool("strict", false, "abort if the parameter file contains a key no component ever reads")
	rootCmd.Flags().String("profile", "", `enable a pkg/profile run: "cpu", "mem", or "" to disable`)
	rootCmd.SilenceUsage = true
}

func fatalf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
