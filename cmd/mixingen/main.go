/*
   Copyright 2025 The DIRPX Authors.

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

// Command mixingen generates dispatch shims for mixin interfaces.
//
//	//go:generate mixingen --type Person --type Clock
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dirpx.dev/mixin/internal/shimgen"
)

var opts shimgen.Options

var rootCmd = &cobra.Command{
	Use:   "mixingen --type <Interface> [--type ...]",
	Short: "Generate mixin dispatch shims for Go interfaces",
	Long: `mixingen loads a Go package, finds the named interfaces and writes a
shim per interface. A shim implements the interface over a synthesized
mixin instance and registers itself with dispatch.RegisterShim, so that
mixin.CreateInstance can return the interface type.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		written, err := shimgen.Generate(opts)
		for _, path := range written {
			slog.Info("Shim written", slog.String("path", path))
		}
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&opts.Pattern, "pkg", ".", "package pattern declaring the interfaces")
	rootCmd.Flags().StringSliceVar(&opts.Types, "type", nil, "interface name (repeatable)")
	rootCmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default <iface>_mixin.go per interface)")
	_ = rootCmd.MarkFlagRequired("type")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Shim generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
