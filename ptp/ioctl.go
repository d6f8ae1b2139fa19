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
	"io"
	"unsafe"

	"github.com/vtolstov/go-ioctl"
)

// Request codes for the PTP clock ioctls, computed the same way the
// _IOR/_IOW/_IOWR macros in linux/ptp_clock.h compute them. Payload sizes
// come from the struct mirrors, so a header change is a one-struct edit here.
var (
	// RequestClockGetCaps is PTP_CLOCK_GETCAPS, _IOR('=', 1, struct ptp_clock_caps)
	RequestClockGetCaps = uint32(ioctl.IOR(ptpClkMagic, 1, unsafe.Sizeof(PTPClockCaps{})))
	// RequestSysOffset is PTP_SYS_OFFSET, _IOW('=', 5, struct ptp_sys_offset)
	RequestSysOffset = uint32(ioctl.IOW(ptpClkMagic, 5, unsafe.Sizeof(PTPSysOffset{})))
	// RequestSysOffsetPrecise is PTP_SYS_OFFSET_PRECISE, _IOWR('=', 8, struct ptp_sys_offset_precise)
	RequestSysOffsetPrecise = uint32(ioctl.IOWR(ptpClkMagic, 8, unsafe.Sizeof(PTPSysOffsetPrecise{})))
	// RequestSysOffsetExtended is PTP_SYS_OFFSET_EXTENDED, _IOWR('=', 9, struct ptp_sys_offset_extended)
	RequestSysOffsetExtended = uint32(ioctl.IOWR(ptpClkMagic, 9, unsafe.Sizeof(PTPSysOffsetExtended{})))
)

// ioctl request bit layout per include/uapi/asm-generic/ioctl.h:
// number in bits 0-7, type in bits 8-15, size in bits 16-29,
// direction in bits 30-31. mips, sparc and powerpc use a different
// convention and would need their own constant block.
const (
	iocNRBits   = 8
	iocTypeBits = 8
	iocSizeBits = 14
	iocDirBits  = 2

	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits

	// direction field values
	IocNone  = 0
	IocWrite = 1
	IocRead  = 2
)

// RequestDir extracts the direction field from an ioctl request code.
func RequestDir(req uint32) uint32 {
	return (req >> iocDirShift) & (1<<iocDirBits - 1)
}

// RequestSize extracts the payload size field from an ioctl request code.
func RequestSize(req uint32) uint32 {
	return (req >> iocSizeShift) & (1<<iocSizeBits - 1)
}

// RequestType extracts the subsystem type byte from an ioctl request code.
func RequestType(req uint32) uint32 {
	return (req >> iocTypeShift) & (1<<iocTypeBits - 1)
}

// RequestNR extracts the sequence number from an ioctl request code.
func RequestNR(req uint32) uint32 {
	return (req >> iocNRShift) & (1<<iocNRBits - 1)
}

// FormatRequest renders a request code as 0x followed by exactly
// 8 lowercase hex digits, the way the kernel selftests print them.
func FormatRequest(req uint32) string {
	return fmt.Sprintf("0x%08x", req)
}

// RequestDescription pairs an ioctl name with its request code.
type RequestDescription struct {
	Name    string
	Request uint32
}

// RequestDescriptions lists the supported PTP ioctls in the order of their
// sequence numbers in linux/ptp_clock.h.
func RequestDescriptions() []RequestDescription {
	return []RequestDescription{
		{Name: "PTP_CLOCK_GETCAPS", Request: RequestClockGetCaps},
		{Name: "PTP_SYS_OFFSET", Request: RequestSysOffset},
		{Name: "PTP_SYS_OFFSET_PRECISE", Request: RequestSysOffsetPrecise},
		{Name: "PTP_SYS_OFFSET_EXTENDED", Request: RequestSysOffsetExtended},
	}
}

// FprintRequests writes one "NAME: 0xXXXXXXXX" line per supported ioctl
// to w, in RequestDescriptions order.
func FprintRequests(w io.Writer) error {
	for _, d := range RequestDescriptions() {
		if _, err := fmt.Fprintf(w, "%s: %s\n", d.Name, FormatRequest(d.Request)); err != nil {
			return err
		}
	}
	return nil
}
