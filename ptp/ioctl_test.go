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
	"bytes"
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestRequestValues(t *testing.T) {
	// reference values from linux/ptp_clock.h on platforms with the
	// asm-generic ioctl layout
	require.Equal(t, uint32(0x80503d01), RequestClockGetCaps)
	require.Equal(t, uint32(0x43403d05), RequestSysOffset)
	require.Equal(t, uint32(0xc0403d08), RequestSysOffsetPrecise)
	require.Equal(t, uint32(0xc4c03d09), RequestSysOffsetExtended)
}

func TestRequestDecompose(t *testing.T) {
	testCases := []struct {
		name string
		req  uint32
		dir  uint32
		size uintptr
		nr   uint32
	}{
		{"PTP_CLOCK_GETCAPS", RequestClockGetCaps, IocRead, unsafe.Sizeof(PTPClockCaps{}), 1},
		{"PTP_SYS_OFFSET", RequestSysOffset, IocWrite, unsafe.Sizeof(PTPSysOffset{}), 5},
		{"PTP_SYS_OFFSET_PRECISE", RequestSysOffsetPrecise, IocRead | IocWrite, unsafe.Sizeof(PTPSysOffsetPrecise{}), 8},
		{"PTP_SYS_OFFSET_EXTENDED", RequestSysOffsetExtended, IocRead | IocWrite, unsafe.Sizeof(PTPSysOffsetExtended{}), 9},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.dir, RequestDir(tc.req))
			require.Equal(t, uint32(tc.size), RequestSize(tc.req))
			require.Equal(t, uint32(ptpClkMagic), RequestType(tc.req))
			require.Equal(t, tc.nr, RequestNR(tc.req))
		})
	}
}

func TestStructSizes(t *testing.T) {
	// sizes baked into the request codes, as defined in linux/ptp_clock.h
	require.Equal(t, uintptr(80), unsafe.Sizeof(PTPClockCaps{}))
	require.Equal(t, uintptr(832), unsafe.Sizeof(PTPSysOffset{}))
	require.Equal(t, uintptr(64), unsafe.Sizeof(PTPSysOffsetPrecise{}))
	require.Equal(t, uintptr(1216), unsafe.Sizeof(PTPSysOffsetExtended{}))
}

func TestFormatRequest(t *testing.T) {
	require.Equal(t, "0x00000000", FormatRequest(0))
	require.Equal(t, "0xffffffff", FormatRequest(0xffffffff))
	require.Equal(t, "0x80503d01", FormatRequest(RequestClockGetCaps))
	require.Len(t, FormatRequest(0x3d13), 10)
}

func TestRequestDescriptionsOrder(t *testing.T) {
	descriptions := RequestDescriptions()
	require.Len(t, descriptions, 4)
	names := []string{}
	for _, d := range descriptions {
		names = append(names, d.Name)
	}
	require.Equal(t, []string{
		"PTP_CLOCK_GETCAPS",
		"PTP_SYS_OFFSET",
		"PTP_SYS_OFFSET_PRECISE",
		"PTP_SYS_OFFSET_EXTENDED",
	}, names)
}

func TestFprintRequests(t *testing.T) {
	expected := "PTP_CLOCK_GETCAPS: 0x80503d01\n" +
		"PTP_SYS_OFFSET: 0x43403d05\n" +
		"PTP_SYS_OFFSET_PRECISE: 0xc0403d08\n" +
		"PTP_SYS_OFFSET_EXTENDED: 0xc4c03d09\n"

	buf := &bytes.Buffer{}
	require.NoError(t, FprintRequests(buf))
	require.Equal(t, expected, buf.String())

	// output is the same on every run
	buf.Reset()
	require.NoError(t, FprintRequests(buf))
	require.Equal(t, expected, buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestFprintRequestsWriteError(t *testing.T) {
	require.Error(t, FprintRequests(failWriter{}))
}
