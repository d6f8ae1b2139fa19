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
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Device is an opened PTP hardware clock character device, e.g. /dev/ptp0
type Device struct {
	f *os.File
}

// Open opens the PTP device at path for reading
func Open(path string) (*Device, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening device %q: %w", path, err)
	}
	return FromFile(f), nil
}

// FromFile wraps an already opened PTP device file
func FromFile(f *os.File) *Device {
	return &Device{f: f}
}

// File returns the underlying device file
func (dev *Device) File() *os.File {
	return dev.f
}

// Close closes the device file
func (dev *Device) Close() error {
	return dev.f.Close()
}

// file descriptor number to clockID
func fdToClockID(fd uintptr) int32 {
	return int32((int(^fd) << 3) | 3)
}

func (dev *Device) ioctl(req uint32, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL, dev.f.Fd(),
		uintptr(req),
		uintptr(arg),
	)
	if errno != 0 {
		return fmt.Errorf("%s (%d)", unix.ErrnoName(errno), errno)
	}
	return nil
}

// Caps issues PTP_CLOCK_GETCAPS and returns the clock capabilities
func (dev *Device) Caps() (*PTPClockCaps, error) {
	caps := &PTPClockCaps{}
	if err := dev.ioctl(RequestClockGetCaps, unsafe.Pointer(caps)); err != nil {
		return nil, fmt.Errorf("failed PTP_CLOCK_GETCAPS: %w", err)
	}
	return caps, nil
}

// SysOffset issues PTP_SYS_OFFSET to measure system/PHC time nsamples times
func (dev *Device) SysOffset(nsamples int) (*PTPSysOffset, error) {
	if nsamples < 1 || nsamples > ptpMaxSamples {
		return nil, fmt.Errorf("n_samples must be between 1 and %d, got %d", ptpMaxSamples, nsamples)
	}
	res := &PTPSysOffset{NSamples: uint32(nsamples)}
	if err := dev.ioctl(RequestSysOffset, unsafe.Pointer(res)); err != nil {
		return nil, fmt.Errorf("failed PTP_SYS_OFFSET: %w", err)
	}
	return res, nil
}

// SysOffsetPrecise issues PTP_SYS_OFFSET_PRECISE to get a hardware
// cross-timestamp of the PHC and the system clocks. The driver must
// support cross timestamping (see PTPClockCaps.CrossTimestamping).
func (dev *Device) SysOffsetPrecise() (*PTPSysOffsetPrecise, error) {
	res := &PTPSysOffsetPrecise{}
	if err := dev.ioctl(RequestSysOffsetPrecise, unsafe.Pointer(res)); err != nil {
		return nil, fmt.Errorf("failed PTP_SYS_OFFSET_PRECISE: %w", err)
	}
	return res, nil
}

// SysOffsetExtended issues PTP_SYS_OFFSET_EXTENDED to get nsamples
// [system, phc, system] time stamp triplets
func (dev *Device) SysOffsetExtended(nsamples int) (*PTPSysOffsetExtended, error) {
	if nsamples < 1 || nsamples > ptpMaxSamples {
		return nil, fmt.Errorf("n_samples must be between 1 and %d, got %d", ptpMaxSamples, nsamples)
	}
	res := &PTPSysOffsetExtended{NSamples: uint32(nsamples)}
	if err := dev.ioctl(RequestSysOffsetExtended, unsafe.Pointer(res)); err != nil {
		return nil, fmt.Errorf("failed PTP_SYS_OFFSET_EXTENDED: %w", err)
	}
	return res, nil
}

// Time reads the PHC via clock_gettime on the device clockid
func (dev *Device) Time() (time.Time, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(fdToClockID(dev.f.Fd()), &ts); err != nil {
		return time.Time{}, fmt.Errorf("failed clock_gettime: %w", err)
	}
	return time.Unix(ts.Unix()), nil
}
