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

package test

import (
	"bytes"
	"context"
	"encoding/hex"
	"sort"
	"sync"

	"github.com/blinklabs-io/substate/chain"
	"github.com/blinklabs-io/substate/scale"
)

// Source is an in-memory node state for query tests
type Source struct {
	mu        sync.Mutex
	entries   map[string][]byte
	order     []string
	blocks    map[chain.Hash]*Source
	finalized *chain.Hash
	headers   map[chain.Hash]*chain.Header
	failKeys  map[string]error
	fetches   int
	// EnumerateErr is returned by every EnumerateKeys call when set
	EnumerateErr error
}

func NewSource() *Source {
	return &Source{
		entries:  make(map[string][]byte),
		blocks:   make(map[chain.Hash]*Source),
		headers:  make(map[chain.Hash]*chain.Header),
		failKeys: make(map[string]error),
	}
}

// Set stores raw bytes under key
func (s *Source) Set(key []byte, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[string(key)]; !ok {
		s.order = append(s.order, string(key))
	}
	s.entries[string(key)] = value
}

// SetValue stores the SCALE encoding of value under key
func (s *Source) SetValue(key []byte, value scale.Encodable) {
	data, err := scale.Marshal(value)
	if err != nil {
		panic("error encoding test value: " + err.Error())
	}
	s.Set(key, data)
}

// SetKeyOnly makes key enumerable while fetches for it report absence
func (s *Source) SetKeyOnly(key []byte) {
	s.Set(key, nil)
}

// FailFetch makes fetches of key return err
func (s *Source) FailFetch(key []byte, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failKeys[string(key)] = err
}

// Block returns the state used for queries at the given block hash, creating it if needed
func (s *Source) Block(hash chain.Hash) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ret, ok := s.blocks[hash]; ok {
		return ret
	}
	ret := NewSource()
	s.blocks[hash] = ret
	return ret
}

// SetFinalized sets the finalized head and, when header is non-nil, its header
func (s *Source) SetFinalized(hash chain.Hash, header *chain.Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalized = &hash
	if header != nil {
		s.headers[hash] = header
	}
}

// Fetches returns the number of FetchRaw calls served
func (s *Source) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func (s *Source) state(at *chain.Hash) *Source {
	if at == nil {
		return s
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if ret, ok := s.blocks[*at]; ok {
		return ret
	}
	return NewSource()
}

// EnumerateKeys returns matching keys in the order they were first set
func (s *Source) EnumerateKeys(
	ctx context.Context,
	prefix []byte,
	at *chain.Hash,
) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.EnumerateErr != nil {
		return nil, s.EnumerateErr
	}
	state := s.state(at)
	state.mu.Lock()
	defer state.mu.Unlock()
	var ret [][]byte
	for _, key := range state.order {
		if bytes.HasPrefix([]byte(key), prefix) {
			ret = append(ret, []byte(key))
		}
	}
	return ret, nil
}

func (s *Source) FetchRaw(
	ctx context.Context,
	key []byte,
	at *chain.Hash,
) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	s.fetches++
	failErr := s.failKeys[string(key)]
	s.mu.Unlock()
	if failErr != nil {
		return nil, false, failErr
	}
	state := s.state(at)
	state.mu.Lock()
	defer state.mu.Unlock()
	value, ok := state.entries[string(key)]
	if !ok || value == nil {
		return nil, false, nil
	}
	return value, true, nil
}

func (s *Source) FinalizedHead(ctx context.Context) (*chain.Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finalized, nil
}

func (s *Source) Header(
	ctx context.Context,
	hash chain.Hash,
) (*chain.Header, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headers[hash], nil
}

// String lists the stored keys, for test failure messages
func (s *Source) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, hex.EncodeToString([]byte(key)))
	}
	sort.Strings(keys)
	var buf bytes.Buffer
	for _, key := range keys {
		buf.WriteString(key)
		buf.WriteByte('\n')
	}
	return buf.String()
}
