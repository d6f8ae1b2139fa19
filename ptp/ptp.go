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

// Package ptp wraps the Linux PTP hardware clock character device
// (/dev/ptpN) and the ioctls it answers to, as defined in the kernel's
// include/uapi/linux/ptp_clock.h.
package ptp

import "time"

// Constants from linux/ptp_clock.h
const (
	// ptpClkMagic is the ioctl type byte assigned to the PTP clock subsystem
	ptpClkMagic = '='
	// ptpMaxSamples is PTP_MAX_SAMPLES, the kernel cap on measurements per request
	ptpMaxSamples = 25
)

// PTPClockTime as defined in linux/ptp_clock.h
type PTPClockTime struct {
	Sec      int64  /* seconds */
	NSec     uint32 /* nanoseconds */
	Reserved uint32
}

// Time returns PTPClockTime as time.Time
func (t PTPClockTime) Time() time.Time {
	return time.Unix(t.Sec, int64(t.NSec))
}

// PTPClockCaps as defined in linux/ptp_clock.h
type PTPClockCaps struct {
	MaxAdj  int32 /* Maximum frequency adjustment in parts per billon. */
	NAlarm  int32 /* Number of programmable alarms. */
	NExtTS  int32 /* Number of external time stamp channels. */
	NPerOut int32 /* Number of programmable periodic signals. */
	PPS     int32 /* Whether the clock supports a PPS callback. */
	NPins   int32 /* Number of input/output pins. */
	/* Whether the clock supports precise system-device cross timestamps */
	CrossTimestamping int32
	/* Whether the clock supports adjust phase */
	AdjustPhase int32
	MaxPhaseAdj int32     /* Maximum phase adjustment in nanoseconds. */
	Rsv         [11]int32 /* Reserved for future use. */
}

// PTPSysOffset as defined in linux/ptp_clock.h
type PTPSysOffset struct {
	NSamples uint32    /* Desired number of measurements. */
	Rsv      [3]uint32 /* Reserved for future use. */
	/*
	 * Array of interleaved system/phc time stamps. The kernel will provide
	 * 2*n_samples+1 time stamps, with the beginning and end of each
	 * measurement taken from the system clock.
	 */
	TS [2*ptpMaxSamples + 1]PTPClockTime
}

// PTPSysOffsetPrecise as defined in linux/ptp_clock.h
type PTPSysOffsetPrecise struct {
	Device      PTPClockTime
	SysRealTime PTPClockTime
	SysMonoRaw  PTPClockTime
	Rsv         [4]uint32 /* Reserved for future use. */
}

// PTPSysOffsetExtended as defined in linux/ptp_clock.h
type PTPSysOffsetExtended struct {
	NSamples uint32    /* Desired number of measurements. */
	Rsv      [3]uint32 /* Reserved for future use. */
	/*
	 * Array of [system, phc, system] time stamps. The kernel will provide
	 * 3*n_samples time stamps.
	 * - system time right before reading the lowest bits of the PHC timestamp
	 * - PHC time
	 * - system time immediately after reading the lowest bits of the PHC timestamp
	 */
	TS [ptpMaxSamples][3]PTPClockTime
}
