/*
Copyright (c) Facebook, Inc. and its affiliates.

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
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/paulgear/ptp-time/ptp"
)

// RootCmd is a main entry point. Run with no arguments it dumps the raw PTP
// ioctl request values, which is handy for sanity-checking bindings against
// what the local linux/ptp_clock.h actually produces.
var RootCmd = &cobra.Command{
	Use:   "ptptime",
	Short: "Diagnostics for Linux PTP hardware clocks",
	Run: func(_ *cobra.Command, _ []string) {
		ConfigureVerbosity()
		if err := printIoctls(os.Stdout); err != nil {
			log.Fatalf("writing ioctl values: %v", err)
		}
	},
}

// flags
var rootVerboseFlag bool

func init() {
	RootCmd.PersistentFlags().BoolVarP(&rootVerboseFlag, "verbose", "v", false, "verbose output")
}

// ConfigureVerbosity configures log verbosity based on parsed flags. Needs to be called by any subcommand.
func ConfigureVerbosity() {
	log.SetLevel(log.InfoLevel)
	if rootVerboseFlag {
		log.SetLevel(log.DebugLevel)
	}
}

func printIoctls(w io.Writer) error {
	return ptp.FprintRequests(w)
}

// Execute is the main entry point for CLI interface
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
