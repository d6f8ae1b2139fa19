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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPTPClockTimeTime(t *testing.T) {
	ct := PTPClockTime{Sec: 1667818190, NSec: 552297411}
	require.Equal(t, time.Unix(1667818190, 552297411), ct.Time())

	require.Equal(t, time.Unix(0, 0), PTPClockTime{}.Time())
}

func TestOpenNotFound(t *testing.T) {
	dev, err := Open("/dev/ptp-does-not-exist")
	require.Error(t, err)
	require.Nil(t, dev)
}

func TestSysOffsetSamplesOutOfRange(t *testing.T) {
	dev := &Device{}

	_, err := dev.SysOffset(0)
	require.Error(t, err)
	_, err = dev.SysOffset(ptpMaxSamples + 1)
	require.Error(t, err)

	_, err = dev.SysOffsetExtended(0)
	require.Error(t, err)
	_, err = dev.SysOffsetExtended(ptpMaxSamples + 1)
	require.Error(t, err)
}
