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
	"errors"
	"fmt"
)

// ErrTruncatedInput indicates that the input ended before the value being decoded was complete
var ErrTruncatedInput = errors.New("truncated input")

// ErrInvalidDiscriminant indicates a tag, boolean or enum variant byte outside its defined range
var ErrInvalidDiscriminant = errors.New("invalid discriminant")

// ErrCompactOverflow indicates a compact integer too large for the requested Go type
var ErrCompactOverflow = errors.New("compact integer overflow")

// ErrNonCanonicalCompact indicates a compact integer that was not encoded in its
// minimal mode. It is only returned by decoders created with WithStrictCompact
var ErrNonCanonicalCompact = errors.New("non-canonical compact encoding")

// DecodeError identifies where decoding failed and what was being decoded
type DecodeError struct {
	Offset int
	Type   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf(
		"scale: decoding %s at offset %d: %s",
		e.Type,
		e.Offset,
		e.Err,
	)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func newDecodeError(offset int, typ string, err error) error {
	// Keep the innermost location when errors bubble up through nested decoders
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		return err
	}
	return &DecodeError{
		Offset: offset,
		Type:   typ,
		Err:    err,
	}
}
