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

package scale

import (
	"github.com/holiman/uint256"
)

// Compact integer modes, selected by the two low bits of the first byte
const (
	CompactModeSingle = 0b00
	CompactModeTwo    = 0b01
	CompactModeFour   = 0b10
	CompactModeBig    = 0b11

	compactModeMask = 0b11

	// Largest value representable by each of the fixed-width modes
	CompactMaxSingle = 1<<6 - 1
	CompactMaxTwo    = 1<<14 - 1
	CompactMaxFour   = 1<<30 - 1

	// A big mode length is 4 plus the six high bits of the first byte
	compactBigMinBytes = 4
)

// ReadCompact reads a compact integer that must fit in 64 bits
func (d *Decoder) ReadCompact() (uint64, error) {
	start := d.Offset()
	v, err := d.readCompact("compact")
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		d.rewind(start)
		return 0, newDecodeError(start, "compact", ErrCompactOverflow)
	}
	return v.Uint64(), nil
}

// ReadCompactU32 reads a compact integer that must fit in 32 bits
func (d *Decoder) ReadCompactU32() (uint32, error) {
	start := d.Offset()
	v, err := d.ReadCompact()
	if err != nil {
		return 0, err
	}
	if v > 0xffffffff {
		d.rewind(start)
		return 0, newDecodeError(start, "compact u32", ErrCompactOverflow)
	}
	return uint32(v), nil // #nosec G115
}

// ReadCompactBig reads a compact integer of up to 256 bits, as used for balances
func (d *Decoder) ReadCompactBig() (uint256.Int, error) {
	return d.readCompact("compact balance")
}

// compactSize returns the full encoded length, mode byte included, announced by first
func compactSize(first byte) int {
	switch first & compactModeMask {
	case CompactModeSingle:
		return 1
	case CompactModeTwo:
		return 2
	case CompactModeFour:
		return 4
	default:
		return 1 + int(first>>2) + compactBigMinBytes
	}
}

func (d *Decoder) readCompact(typ string) (uint256.Int, error) {
	var ret uint256.Int
	start := d.Offset()
	if err := d.need(1, typ); err != nil {
		return ret, err
	}
	first := d.data[start]
	size := compactSize(first)
	if err := d.need(size, typ); err != nil {
		return ret, err
	}
	v, err := d.dec.DecodeUintCompact()
	if err != nil {
		d.rewind(start)
		return ret, newDecodeError(start, typ, err)
	}
	// The big mode can announce up to 67 bytes; values are capped at 256 bits
	if v.BitLen() > 256 {
		d.rewind(start)
		return ret, newDecodeError(start, typ, ErrCompactOverflow)
	}
	fitsFour := v.IsUint64() && v.Uint64() <= CompactMaxFour
	if d.strict &&
		!compactCanonical(first&compactModeMask, size, v.BitLen(), fitsFour) {
		d.rewind(start)
		return ret, newDecodeError(start, typ, ErrNonCanonicalCompact)
	}
	ret.SetFromBig(v)
	return ret, nil
}

// compactCanonical reports whether a value of bitLen bits was written in its minimal mode
func compactCanonical(mode byte, size int, bitLen int, fitsFour bool) bool {
	switch mode {
	case CompactModeTwo:
		return bitLen > 6
	case CompactModeFour:
		return bitLen > 14
	case CompactModeBig:
		// No high zero bytes, and nothing the four byte mode could hold
		return (bitLen+7)/8 == size-1 && !fitsFour
	default:
		return true
	}
}
