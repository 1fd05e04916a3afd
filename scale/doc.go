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

// Package scale implements the SCALE binary encoding used by Substrate-based
// nodes for storage values and keys.
//
// SCALE is not self-describing: the caller supplies the shape. Fixed-width
// integers are little-endian, Option values carry a one-byte tag, sequences
// carry a compact length prefix, and composite records are the concatenation
// of their fields with no padding.
//
// Composite types implement Decodable and are read with Unmarshal, or nested
// inside other values with DecodeInto, DecodeOption and DecodeSeq:
//
//	var info staking.ActiveEraInfo
//	if _, err := scale.Unmarshal(raw, &info); err != nil {
//		return err
//	}
//
// Primitive values are read and written by the go-substrate-rpc-client scale
// codec. This package adds the shape helpers, bounds checks that leave the
// cursor in place on failure, and optional strict compact decoding.
//
// Every failure is a *DecodeError that unwraps to ErrTruncatedInput,
// ErrInvalidDiscriminant, ErrCompactOverflow or ErrNonCanonicalCompact.
package scale
