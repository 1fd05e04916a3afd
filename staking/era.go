// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package staking

import (
	"github.com/blinklabs-io/substate/scale"
)

type (
	EraIndex     = uint32
	SessionIndex = uint32
)

// ActiveEraInfo describes the era currently being rewarded
type ActiveEraInfo struct {
	Index EraIndex
	// Start of the era in milliseconds since the Unix epoch. It is nil until
	// the first block of the era has been finalized
	Start *uint64
}

func (a *ActiveEraInfo) DecodeScale(d *scale.Decoder) error {
	var err error
	if a.Index, err = d.ReadU32(); err != nil {
		return err
	}
	a.Start, err = scale.DecodeOption(d, (*scale.Decoder).ReadU64)
	return err
}

func (a ActiveEraInfo) EncodeScale(e *scale.Encoder) error {
	e.WriteU32(a.Index)
	e.WriteOption(a.Start != nil)
	if a.Start != nil {
		e.WriteU64(*a.Start)
	}
	return nil
}
