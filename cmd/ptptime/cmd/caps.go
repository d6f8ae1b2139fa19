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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/paulgear/ptp-time/ptp"
)

// flags
var device string

var capsCmd = &cobra.Command{
	Use:   "caps",
	Short: "Print PTP clock capabilities (PTP_CLOCK_GETCAPS)",
	Run:   runCapsCmd,
}

func init() {
	RootCmd.AddCommand(capsCmd)
	capsCmd.Flags().StringVarP(&device, "device", "d", "/dev/ptp0", "PTP device to query")
}

func runCapsCmd(cmd *cobra.Command, _ []string) {
	ConfigureVerbosity()
	if err := printCaps(cmd.OutOrStdout(), device); err != nil {
		log.Fatal(err)
	}
}

func printCaps(w io.Writer, device string) error {
	dev, err := ptp.Open(device)
	if err != nil {
		return err
	}
	defer dev.Close()
	caps, err := dev.Caps()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "max_adj: %d\n", caps.MaxAdj)
	fmt.Fprintf(w, "n_alarm: %d\n", caps.NAlarm)
	fmt.Fprintf(w, "n_ext_ts: %d\n", caps.NExtTS)
	fmt.Fprintf(w, "n_per_out: %d\n", caps.NPerOut)
	fmt.Fprintf(w, "pps: %d\n", caps.PPS)
	fmt.Fprintf(w, "n_pins: %d\n", caps.NPins)
	fmt.Fprintf(w, "cross_timestamping: %d\n", caps.CrossTimestamping)
	fmt.Fprintf(w, "adjust_phase: %d\n", caps.AdjustPhase)
	fmt.Fprintf(w, "max_phase_adj: %d\n", caps.MaxPhaseAdj)
	return nil
}
