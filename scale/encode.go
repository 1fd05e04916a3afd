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
	"bytes"
	"errors"
	"math/big"

	gsscale "github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/holiman/uint256"
)

// ErrValueTooLarge indicates a value that does not fit in the target encoding
var ErrValueTooLarge = errors.New("value too large for encoding")

// Encodable is implemented by composite types that can write themselves to an Encoder
type Encodable interface {
	EncodeScale(e *Encoder) error
}

// Encoder builds SCALE encoded bytes. Compact integers are always written in their
// minimal mode. Writes go to an in-memory buffer and cannot fail
type Encoder struct {
	buf bytes.Buffer
	enc *gsscale.Encoder
}

func NewEncoder() *Encoder {
	e := &Encoder{}
	e.enc = gsscale.NewEncoder(&e.buf)
	return e
}

// Marshal encodes v and returns the resulting bytes
func Marshal(v Encodable) ([]byte, error) {
	e := NewEncoder()
	if err := v.EncodeScale(e); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// Bytes returns the encoded data
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *Encoder) WriteU8(v uint8) {
	_ = e.enc.PushByte(v)
}

func (e *Encoder) WriteU16(v uint16) {
	_ = e.enc.Encode(v)
}

func (e *Encoder) WriteU32(v uint32) {
	_ = e.enc.Encode(v)
}

func (e *Encoder) WriteU64(v uint64) {
	_ = e.enc.Encode(v)
}

// WriteU128 writes v as 16 little-endian bytes
func (e *Encoder) WriteU128(v *uint256.Int) error {
	if v.BitLen() > 128 {
		return ErrValueTooLarge
	}
	e.WriteBytes(uint256ToLE(v, 16))
	return nil
}

func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteU8(1)
	} else {
		e.WriteU8(0)
	}
}

// WriteBytes writes raw bytes with no length prefix
func (e *Encoder) WriteBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	_ = e.enc.Write(b)
}

// WriteByteSlice writes a compact length prefix followed by b
func (e *Encoder) WriteByteSlice(b []byte) {
	e.WriteCompact(uint64(len(b)))
	e.WriteBytes(b)
}

// WriteOption writes an Option tag byte. The caller writes the value when present
func (e *Encoder) WriteOption(present bool) {
	e.WriteBool(present)
}

// WriteCompact writes v as a minimal-length compact integer
func (e *Encoder) WriteCompact(v uint64) {
	_ = e.enc.EncodeUintCompact(*new(big.Int).SetUint64(v))
}

// WriteCompactBig writes v as a minimal-length compact integer
func (e *Encoder) WriteCompactBig(v *uint256.Int) {
	_ = e.enc.EncodeUintCompact(*v.ToBig())
}

// AppendCompact appends the minimal compact encoding of v to dst
func AppendCompact(dst []byte, v uint64) []byte {
	e := NewEncoder()
	e.WriteCompact(v)
	return append(dst, e.Bytes()...)
}

// EncodeSeq writes a compact length followed by each item
func EncodeSeq[T any](e *Encoder, items []T, fn func(*Encoder, T) error) error {
	e.WriteCompact(uint64(len(items)))
	for _, item := range items {
		if err := fn(e, item); err != nil {
			return err
		}
	}
	return nil
}

func uint256ToLE(v *uint256.Int, n int) []byte {
	be := v.Bytes32()
	ret := make([]byte, n)
	for i := 0; i < n; i++ {
		ret[i] = be[31-i]
	}
	return ret
}
