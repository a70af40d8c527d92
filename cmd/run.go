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
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/cholla/internal/param"
	"github.com/notargets/cholla/internal/sim"
)

// runSimulation is rootCmd's RunE: parse the parameter file plus any
// "key=value" CLI overrides, build and run the Sim, report the outcome.
func runSimulation(cmd *cobra.Command, args []string) error {
	profileKind, _ := cmd.Flags().GetString("profile")
	if stopper := startProfile(profileKind); stopper != nil {
		defer stopper.Stop()
	}

	strict, _ := cmd.Flags().GetBool("strict")

	paramFile, err := homedir.Expand(args[0])
	if err != nil {
		return fatalf("resolving parameter file path %q: %w", args[0], err)
	}
	overrides := args[1:]

	f, err := os.Open(paramFile)
	if err != nil {
		return fatalf("opening parameter file %q: %w", paramFile, err)
	}
	defer f.Close()

	m, err := param.Parse(f, overrides)
	if err != nil {
		return err
	}

	cfg, err := sim.ConfigFromParams(m)
	if err != nil {
		return err
	}

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}

	if m.BoolOr("restart", false) {
		if err := s.Restore(); err != nil {
			return err
		}
	}

	unused, err := m.WarnUnusedParameters(sim.ReservedKeys(), strict)
	if err != nil {
		return err
	}
	if len(unused) > 0 {
		fmt.Fprintf(os.Stderr, "cholla: warning: unused parameter(s): %v\n", unused)
	}

	if err := s.Run(); err != nil {
		return err
	}

	fmt.Printf("cholla: completed %d step(s), t=%g\n", s.Clock.Step, s.Clock.Time)
	return nil
}

func startProfile(kind string) interface{ Stop() } {
	switch kind {
	case "cpu":
		return profile.Start(profile.CPUProfile)
	case "mem":
		return profile.Start(profile.MemProfile)
	default:
		return nil
	}
}
