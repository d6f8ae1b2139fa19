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

package ptp

import (
	"fmt"
	"time"
)

// TimeMethod is a method we use to measure PHC vs system time
type TimeMethod string

// Methods we support to measure the offset
const (
	MethodSyscallClockGettime    TimeMethod = "syscall_clock_gettime"
	MethodIoctlSysOffset         TimeMethod = "ioctl_PTP_SYS_OFFSET"
	MethodIoctlSysOffsetPrecise  TimeMethod = "ioctl_PTP_SYS_OFFSET_PRECISE"
	MethodIoctlSysOffsetExtended TimeMethod = "ioctl_PTP_SYS_OFFSET_EXTENDED"
)

// SupportedMethods is a list of supported TimeMethods
var SupportedMethods = []TimeMethod{
	MethodSyscallClockGettime,
	MethodIoctlSysOffset,
	MethodIoctlSysOffsetPrecise,
	MethodIoctlSysOffsetExtended,
}

// SysoffResult is a result of PHC time measurement with related data
type SysoffResult struct {
	Offset  time.Duration
	Delay   time.Duration
	SysTime time.Time
	PHCTime time.Time
}

// based on calculate_offset from ptp4l phc_ctl.c
func sysoffEstimateBasic(ts1, rt, ts2 time.Time) SysoffResult {
	interval := ts2.Sub(ts1)
	sysTime := ts1.Add(interval / 2)
	offset := sysTime.Sub(rt)

	return SysoffResult{
		SysTime: sysTime,
		PHCTime: rt,
		Delay:   interval,
		Offset:  offset,
	}
}

// sysoffEstimateSamples picks the sample with the shortest system-clock
// bracket from a PTP_SYS_OFFSET result. The kernel interleaves the stamps,
// so sample i is (TS[2i] system, TS[2i+1] phc, TS[2i+2] system).
func sysoffEstimateSamples(so *PTPSysOffset) SysoffResult {
	best := sysoffEstimateBasic(so.TS[0].Time(), so.TS[1].Time(), so.TS[2].Time())
	for i := 1; i < int(so.NSamples); i++ {
		s := sysoffEstimateBasic(so.TS[2*i].Time(), so.TS[2*i+1].Time(), so.TS[2*i+2].Time())
		if s.Delay < best.Delay {
			best = s
		}
	}
	return best
}

// loosely based on sysoff_estimate from ptp4l sysoff.c
func sysoffEstimateExtended(extended *PTPSysOffsetExtended) SysoffResult {
	best := sysoffEstimateBasic(
		extended.TS[0][0].Time(),
		extended.TS[0][1].Time(),
		extended.TS[0][2].Time(),
	)
	for i := 1; i < int(extended.NSamples); i++ {
		s := sysoffEstimateBasic(
			extended.TS[i][0].Time(),
			extended.TS[i][1].Time(),
			extended.TS[i][2].Time(),
		)
		if s.Delay < best.Delay {
			best = s
		}
	}
	return best
}

// sysoffFromPrecise converts a hardware cross-timestamp to a SysoffResult.
// There is no bracketing delay, both stamps are taken at the same instant.
func sysoffFromPrecise(precise *PTPSysOffsetPrecise) SysoffResult {
	return SysoffResult{
		SysTime: precise.SysRealTime.Time(),
		PHCTime: precise.Device.Time(),
		Offset:  precise.SysRealTime.Time().Sub(precise.Device.Time()),
		Delay:   0,
	}
}

// TimeAndOffset measures the offset between the system clock and the PHC
// using the given method. nsamples is used by the sampling methods and
// ignored by the others.
func (dev *Device) TimeAndOffset(method TimeMethod, nsamples int) (SysoffResult, error) {
	switch method {
	case MethodSyscallClockGettime:
		ts1 := time.Now()
		phcTime, err := dev.Time()
		ts2 := time.Now()
		if err != nil {
			return SysoffResult{}, err
		}
		return sysoffEstimateBasic(ts1, phcTime, ts2), nil
	case MethodIoctlSysOffset:
		so, err := dev.SysOffset(nsamples)
		if err != nil {
			return SysoffResult{}, err
		}
		return sysoffEstimateSamples(so), nil
	case MethodIoctlSysOffsetPrecise:
		precise, err := dev.SysOffsetPrecise()
		if err != nil {
			return SysoffResult{}, err
		}
		return sysoffFromPrecise(precise), nil
	case MethodIoctlSysOffsetExtended:
		extended, err := dev.SysOffsetExtended(nsamples)
		if err != nil {
			return SysoffResult{}, err
		}
		return sysoffEstimateExtended(extended), nil
	}
	return SysoffResult{}, fmt.Errorf("unknown method to measure PHC offset %q", method)
}
