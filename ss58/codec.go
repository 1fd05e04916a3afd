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

package ss58

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/blinklabs-io/substate/chain"
	"github.com/btcsuite/btcd/btcutil/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	// ChecksumSize is the number of blake2b-512 bytes appended to a 32-byte account payload
	ChecksumSize = 2

	// Prefixes up to this value use a single byte
	maxSimplePrefix = 63
	// Largest prefix expressible with the two byte form
	maxPrefix = 16383
)

var checksumPreimagePrefix = []byte("SS58PRE")

var (
	ErrInvalidBase58    = errors.New("invalid base58 encoding")
	ErrInvalidLength    = errors.New("invalid address length")
	ErrInvalidPrefix    = errors.New("invalid address prefix")
	ErrReservedPrefix   = errors.New("reserved address prefix")
	ErrChecksumMismatch = errors.New("address checksum mismatch")
	ErrUnknownVersion   = errors.New("address version does not match network format")
)

// VersionError reports an address whose prefix belongs to a different network
type VersionError struct {
	Expected Format
	Found    uint16
}

func (e VersionError) Error() string {
	return fmt.Sprintf(
		"%s: expected prefix %d (%s), found %d",
		ErrUnknownVersion,
		e.Expected.Prefix,
		e.Expected.Name,
		e.Found,
	)
}

func (VersionError) Is(target error) bool {
	return target == ErrUnknownVersion
}

// Codec converts account IDs to and from the SS58 text form of a single network.
// It is a plain value and safe for concurrent use
type Codec struct {
	format Format
}

// NewCodec returns a Codec for the given format
func NewCodec(format Format) (Codec, error) {
	// The sentinel shares Polkadot's prefix, so it has to be caught by value
	if format == FormatInvalid {
		return Codec{}, fmt.Errorf("%w: no network format given", ErrInvalidPrefix)
	}
	if err := validatePrefix(format.Prefix); err != nil {
		return Codec{}, err
	}
	return Codec{format: format}, nil
}

// Format returns the network format used by the codec
func (c Codec) Format() Format {
	return c.format
}

// Encode returns the SS58 text form of id
func (c Codec) Encode(id chain.AccountId) string {
	payload := encodePrefix(c.format.Prefix)
	payload = append(payload, id[:]...)
	sum := checksum(payload)
	payload = append(payload, sum[:ChecksumSize]...)
	return base58.Encode(payload)
}

// Decode parses an SS58 address, which must use the codec's network prefix
func (c Codec) Decode(addr string) (chain.AccountId, error) {
	id, prefix, err := DecodeAny(addr)
	if err != nil {
		return chain.AccountId{}, err
	}
	if prefix != c.format.Prefix {
		return chain.AccountId{}, VersionError{
			Expected: c.format,
			Found:    prefix,
		}
	}
	return id, nil
}

// DecodeAny parses an SS58 address of any network and returns its prefix.
// Reserved prefixes are rejected as they are by NewCodec
func DecodeAny(addr string) (chain.AccountId, uint16, error) {
	var id chain.AccountId
	data := base58.Decode(addr)
	if len(data) == 0 {
		return id, 0, ErrInvalidBase58
	}
	prefix, prefixLen, err := decodePrefix(data)
	if err != nil {
		return id, 0, err
	}
	if len(data) != prefixLen+chain.AccountIdSize+ChecksumSize {
		return id, 0, fmt.Errorf("%w: %d bytes", ErrInvalidLength, len(data))
	}
	body := data[:len(data)-ChecksumSize]
	sum := checksum(body)
	if !bytes.Equal(sum[:ChecksumSize], data[len(body):]) {
		return id, 0, ErrChecksumMismatch
	}
	if err := validatePrefix(prefix); err != nil {
		return id, 0, err
	}
	copy(id[:], body[prefixLen:])
	return id, prefix, nil
}

func validatePrefix(prefix uint16) error {
	switch {
	case prefix > maxPrefix:
		return fmt.Errorf("%w: %d", ErrInvalidPrefix, prefix)
	// 46 and 47 are reserved by the registry
	case prefix == 46, prefix == 47:
		return fmt.Errorf("%w: %d", ErrReservedPrefix, prefix)
	}
	return nil
}

func encodePrefix(prefix uint16) []byte {
	if prefix <= maxSimplePrefix {
		return []byte{byte(prefix)}
	}
	// The 14-bit prefix is split so the first byte always lands in 64..127
	first := byte((prefix&0b0000_0000_1111_1100)>>2) | 0b0100_0000
	second := byte(prefix>>8) | byte((prefix&0b0000_0000_0000_0011)<<6)
	return []byte{first, second}
}

func decodePrefix(data []byte) (uint16, int, error) {
	switch {
	case data[0] <= maxSimplePrefix:
		return uint16(data[0]), 1, nil
	case data[0] < 0b1000_0000:
		if len(data) < 2 {
			return 0, 0, ErrInvalidLength
		}
		lower := (data[0] << 2) | (data[1] >> 6)
		upper := data[1] & 0b0011_1111
		return uint16(lower) | uint16(upper)<<8, 2, nil
	default:
		return 0, 0, fmt.Errorf("%w: first byte %#x", ErrInvalidPrefix, data[0])
	}
}

func checksum(payload []byte) [blake2b.Size]byte {
	preimage := make([]byte, 0, len(checksumPreimagePrefix)+len(payload))
	preimage = append(preimage, checksumPreimagePrefix...)
	preimage = append(preimage, payload...)
	return blake2b.Sum512(preimage)
}
