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

package chain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Header is a block header as reported by the node
type Header struct {
	ParentHash     Hash
	Number         uint32
	StateRoot      Hash
	ExtrinsicsRoot Hash
	// Digest logs as hex-encoded SCALE bytes
	Digest []string
}

type headerJson struct {
	ParentHash     Hash   `json:"parentHash"`
	Number         string `json:"number"`
	StateRoot      Hash   `json:"stateRoot"`
	ExtrinsicsRoot Hash   `json:"extrinsicsRoot"`
	Digest         struct {
		Logs []string `json:"logs"`
	} `json:"digest"`
}

// UnmarshalJSON decodes the node's JSON header, where the block number is a hex string
func (h *Header) UnmarshalJSON(data []byte) error {
	var tmp headerJson
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	number, err := strconv.ParseUint(
		strings.TrimPrefix(tmp.Number, "0x"),
		16,
		32,
	)
	if err != nil {
		return fmt.Errorf("invalid block number %q: %w", tmp.Number, err)
	}
	*h = Header{
		ParentHash:     tmp.ParentHash,
		Number:         uint32(number),
		StateRoot:      tmp.StateRoot,
		ExtrinsicsRoot: tmp.ExtrinsicsRoot,
		Digest:         tmp.Digest.Logs,
	}
	return nil
}

func (h Header) MarshalJSON() ([]byte, error) {
	tmp := headerJson{
		ParentHash:     h.ParentHash,
		Number:         "0x" + strconv.FormatUint(uint64(h.Number), 16),
		StateRoot:      h.StateRoot,
		ExtrinsicsRoot: h.ExtrinsicsRoot,
	}
	tmp.Digest.Logs = h.Digest
	if tmp.Digest.Logs == nil {
		tmp.Digest.Logs = []string{}
	}
	return json.Marshal(tmp)
}
