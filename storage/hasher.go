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

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
)

// Hasher is the hashing strategy a storage map declares for its keys
type Hasher int

const (
	Identity Hasher = iota
	Twox64Concat
	Twox128
	Twox256
	Blake2b128
	Blake2b128Concat
	Blake2b256
)

var hasherNames = map[Hasher]string{
	Identity:         "Identity",
	Twox64Concat:     "Twox64Concat",
	Twox128:          "Twox128",
	Twox256:          "Twox256",
	Blake2b128:       "Blake2_128",
	Blake2b128Concat: "Blake2_128Concat",
	Blake2b256:       "Blake2_256",
}

func (h Hasher) String() string {
	if name, ok := hasherNames[h]; ok {
		return name
	}
	return fmt.Sprintf("Hasher(%d)", int(h))
}

// IsConcat reports whether the hasher appends the unhashed key after its hash,
// which allows the original key to be recovered from a full storage key
func (h Hasher) IsConcat() bool {
	switch h {
	case Identity, Twox64Concat, Blake2b128Concat:
		return true
	default:
		return false
	}
}

// HashLen returns the length of the hash portion written before any concatenated key
func (h Hasher) HashLen() int {
	switch h {
	case Twox64Concat:
		return 8
	case Twox128, Blake2b128, Blake2b128Concat:
		return 16
	case Twox256, Blake2b256:
		return 32
	default:
		return 0
	}
}

// Hash returns the storage key fragment for data
func (h Hasher) Hash(data []byte) []byte {
	switch h {
	case Identity:
		return append([]byte{}, data...)
	case Twox64Concat:
		return append(TwoX64(data), data...)
	case Twox128:
		return TwoX128(data)
	case Twox256:
		return TwoX256(data)
	case Blake2b128:
		return Blake2b128Hash(data)
	case Blake2b128Concat:
		return append(Blake2b128Hash(data), data...)
	case Blake2b256:
		sum := blake2b.Sum256(data)
		return sum[:]
	default:
		panic(fmt.Sprintf("unknown storage hasher: %d", int(h)))
	}
}

// TwoX64 returns the 64-bit xxhash of data with seed 0, little-endian
func TwoX64(data []byte) []byte {
	return twox(data, 1)
}

// TwoX128 returns two 64-bit xxhash rounds of data with seeds 0 and 1, concatenated
func TwoX128(data []byte) []byte {
	return twox(data, 2)
}

// TwoX256 returns four 64-bit xxhash rounds of data with seeds 0 through 3, concatenated
func TwoX256(data []byte) []byte {
	return twox(data, 4)
}

func twox(data []byte, rounds int) []byte {
	ret := make([]byte, 0, rounds*8)
	for seed := 0; seed < rounds; seed++ {
		h := xxhash.NewWithSeed(uint64(seed)) // #nosec G115
		_, _ = h.Write(data)
		ret = binary.LittleEndian.AppendUint64(ret, h.Sum64())
	}
	return ret
}

// Blake2b128Hash returns the 16-byte blake2b hash of data
func Blake2b128Hash(data []byte) []byte {
	h, err := blake2b.New(16, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	h.Write(data)
	return h.Sum(nil)
}
