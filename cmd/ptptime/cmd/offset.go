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
var (
	method  string
	samples int
)

var offsetCmd = &cobra.Command{
	Use:   "offset",
	Short: "Measure the offset between the system clock and a PTP clock",
	Run:   runOffsetCmd,
}

func init() {
	RootCmd.AddCommand(offsetCmd)
	flags := offsetCmd.Flags()
	flags.StringVarP(&device, "device", "d", "/dev/ptp0", "PTP device to query")
	flags.StringVarP(&method, "method", "m", string(ptp.MethodIoctlSysOffsetExtended),
		fmt.Sprintf("method to measure the offset: %v", ptp.SupportedMethods),
	)
	flags.IntVarP(&samples, "samples", "n", 5, "number of measurements to request")
}

func runOffsetCmd(cmd *cobra.Command, _ []string) {
	ConfigureVerbosity()
	if err := printOffset(cmd.OutOrStdout(), device, ptp.TimeMethod(method), samples); err != nil {
		log.Fatal(err)
	}
}

func printOffset(w io.Writer, device string, method ptp.TimeMethod, samples int) error {
	dev, err := ptp.Open(device)
	if err != nil {
		return err
	}
	defer dev.Close()
	log.Debugf("measuring offset on %s using %s", device, method)
	res, err := dev.TimeAndOffset(method, samples)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "PHC time: %s\n", res.PHCTime)
	fmt.Fprintf(w, "SYS time: %s\n", res.SysTime)
	fmt.Fprintf(w, "Offset: %s\n", res.Offset)
	fmt.Fprintf(w, "Delay: %s\n", res.Delay)
	return nil
}
