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

package query

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrNotFound indicates a storage item that was required but absent
var ErrNotFound = errors.New("storage item not found")

// ErrTransport is matched by every error returned from the Source
var ErrTransport = errors.New("transport failure")

// TransportError wraps a Source failure. It unwraps to the original error
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrTransport, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (*TransportError) Is(target error) bool {
	return target == ErrTransport
}

// KeyError identifies the storage entry whose bytes could not be interpreted
type KeyError struct {
	Item string
	Key  []byte
	Err  error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf(
		"%s at key 0x%s: %s",
		e.Item,
		hex.EncodeToString(e.Key),
		e.Err,
	)
}

func (e *KeyError) Unwrap() error { return e.Err }

// Require turns an absent result into ErrNotFound
func Require[T any](v *T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, ErrNotFound
	}
	return *v, nil
}
