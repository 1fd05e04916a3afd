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
	"io"

	gsscale "github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	"github.com/holiman/uint256"
)

// Decodable is implemented by composite types that know how to read themselves
// from a Decoder. Fields must be read strictly in declaration order
type Decodable interface {
	DecodeScale(d *Decoder) error
}

// Decoder is a cursor over SCALE encoded bytes. Primitive reads go through the
// go-substrate-rpc-client codec; the Decoder adds bounds checks so a failed read
// never consumes input, and reports failures as a *DecodeError
type Decoder struct {
	data   []byte
	reader *bytes.Reader
	dec    *gsscale.Decoder
	strict bool
}

type DecoderOptionFunc func(*Decoder)

// WithStrictCompact makes the decoder reject compact integers that are not
// encoded in their minimal mode
func WithStrictCompact() DecoderOptionFunc {
	return func(d *Decoder) {
		d.strict = true
	}
}

// NewDecoder returns a Decoder positioned at the start of data
func NewDecoder(data []byte, opts ...DecoderOptionFunc) *Decoder {
	reader := bytes.NewReader(data)
	d := &Decoder{
		data:   data,
		reader: reader,
		dec:    gsscale.NewDecoder(reader),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Unmarshal decodes data into dest and returns the number of bytes consumed.
// Trailing bytes are left unread and are not an error
func Unmarshal(
	data []byte,
	dest Decodable,
	opts ...DecoderOptionFunc,
) (int, error) {
	d := NewDecoder(data, opts...)
	if err := dest.DecodeScale(d); err != nil {
		return d.Offset(), err
	}
	return d.Offset(), nil
}

// Offset returns the number of bytes consumed so far
func (d *Decoder) Offset() int {
	return len(d.data) - d.reader.Len()
}

// Remaining returns the number of unread bytes
func (d *Decoder) Remaining() int {
	return d.reader.Len()
}

func (d *Decoder) rewind(offset int) {
	_, _ = d.reader.Seek(int64(offset), io.SeekStart)
}

// need checks that n more bytes are available
func (d *Decoder) need(n int, typ string) error {
	if n < 0 || d.Remaining() < n {
		return newDecodeError(d.Offset(), typ, ErrTruncatedInput)
	}
	return nil
}

// take consumes exactly n bytes or none at all
func (d *Decoder) take(n int, typ string) ([]byte, error) {
	if err := d.need(n, typ); err != nil {
		return nil, err
	}
	ret := make([]byte, n)
	if n == 0 {
		return ret, nil
	}
	start := d.Offset()
	if err := d.dec.Read(ret); err != nil {
		d.rewind(start)
		return nil, newDecodeError(start, typ, err)
	}
	return ret, nil
}

// readByte reads one byte, leaving the cursor in place on failure
func (d *Decoder) readByte(typ string) (byte, error) {
	if err := d.need(1, typ); err != nil {
		return 0, err
	}
	start := d.Offset()
	b, err := d.dec.ReadOneByte()
	if err != nil {
		d.rewind(start)
		return 0, newDecodeError(start, typ, err)
	}
	return b, nil
}

// readFixedWidth decodes a little-endian integer of the given byte size
func readFixedWidth[T uint16 | uint32 | uint64](
	d *Decoder,
	size int,
	typ string,
) (T, error) {
	var ret T
	if err := d.need(size, typ); err != nil {
		return ret, err
	}
	start := d.Offset()
	if err := d.dec.Decode(&ret); err != nil {
		d.rewind(start)
		return ret, newDecodeError(start, typ, err)
	}
	return ret, nil
}

func (d *Decoder) ReadU8() (uint8, error) {
	return d.readByte("u8")
}

func (d *Decoder) ReadU16() (uint16, error) {
	return readFixedWidth[uint16](d, 2, "u16")
}

func (d *Decoder) ReadU32() (uint32, error) {
	return readFixedWidth[uint32](d, 4, "u32")
}

func (d *Decoder) ReadU64() (uint64, error) {
	return readFixedWidth[uint64](d, 8, "u64")
}

// ReadU128 reads a 16-byte little-endian unsigned integer
func (d *Decoder) ReadU128() (uint256.Int, error) {
	b, err := d.take(16, "u128")
	if err != nil {
		return uint256.Int{}, err
	}
	return leToUint256(b), nil
}

// readFlag reads a byte which must be 0 or 1, as used by bools and Option tags
func (d *Decoder) readFlag(typ string) (bool, error) {
	start := d.Offset()
	b, err := d.readByte(typ)
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		d.rewind(start)
		return false, newDecodeError(start, typ, ErrInvalidDiscriminant)
	}
}

// ReadBool reads a single byte which must be 0 or 1
func (d *Decoder) ReadBool() (bool, error) {
	return d.readFlag("bool")
}

// ReadBytes reads exactly n raw bytes. The returned slice is a copy
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	return d.take(n, "bytes")
}

// ReadFixed fills dst completely, as used for fixed-size byte arrays
func (d *Decoder) ReadFixed(dst []byte) error {
	b, err := d.take(len(dst), "fixed bytes")
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// ReadByteSlice reads a compact length prefix followed by that many bytes
func (d *Decoder) ReadByteSlice() ([]byte, error) {
	start := d.Offset()
	n, err := d.ReadSeqLen()
	if err != nil {
		return nil, err
	}
	ret, err := d.ReadBytes(n)
	if err != nil {
		d.rewind(start)
		return nil, err
	}
	return ret, nil
}

// ReadOption reads an Option tag byte and reports whether a value follows
func (d *Decoder) ReadOption() (bool, error) {
	return d.readFlag("option tag")
}

// ReadVariant reads an enum variant index, which must be below count
func (d *Decoder) ReadVariant(count int) (int, error) {
	start := d.Offset()
	b, err := d.readByte("enum variant")
	if err != nil {
		return 0, err
	}
	if int(b) >= count {
		d.rewind(start)
		return 0, newDecodeError(start, "enum variant", ErrInvalidDiscriminant)
	}
	return int(b), nil
}

// ReadSeqLen reads the compact length prefix of a sequence
func (d *Decoder) ReadSeqLen() (int, error) {
	start := d.Offset()
	n, err := d.ReadCompact()
	if err != nil {
		return 0, err
	}
	// A length can never exceed the bytes left, since every element we decode is at least one byte wide
	if n > uint64(d.Remaining()) {
		d.rewind(start)
		return 0, newDecodeError(start, "sequence length", ErrTruncatedInput)
	}
	return int(n), nil // #nosec G115
}

// DecodeOption reads an Option<T>, returning nil when the value is absent
func DecodeOption[T any](
	d *Decoder,
	fn func(*Decoder) (T, error),
) (*T, error) {
	present, err := d.ReadOption()
	if err != nil || !present {
		return nil, err
	}
	v, err := fn(d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DecodeSeq reads a compact length followed by that many T values
func DecodeSeq[T any](
	d *Decoder,
	fn func(*Decoder) (T, error),
) ([]T, error) {
	n, err := d.ReadSeqLen()
	if err != nil {
		return nil, err
	}
	ret := make([]T, 0, n)
	for j := 0; j < n; j++ {
		v, err := fn(d)
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
	}
	return ret, nil
}

// DecodeInto adapts a Decodable type for use with DecodeOption and DecodeSeq
func DecodeInto[T any, PT interface {
	*T
	Decodable
}](d *Decoder) (T, error) {
	var v T
	if err := PT(&v).DecodeScale(d); err != nil {
		return v, err
	}
	return v, nil
}

func leToUint256(b []byte) uint256.Int {
	be := make([]byte, len(b))
	for i := range b {
		be[len(b)-1-i] = b[i]
	}
	var ret uint256.Int
	ret.SetBytes(be)
	return ret
}
