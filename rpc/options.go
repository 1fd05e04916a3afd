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

package rpc

import (
	"log/slog"
	"time"
)

const (
	// Nodes refuse state_getKeysPaged requests for more than this many keys
	MaxPageSize = 1000

	DefaultPageSize       = MaxPageSize
	DefaultRequestTimeout = 30 * time.Second

	// Pages of storage keys are far larger than the websocket library's default read limit
	maxMessageSize = 64 << 20
)

type ClientOptionFunc func(*Client)

// WithLogger specifies the logger to use. Defaults to slog.Default()
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPageSize sets the number of keys requested per state_getKeysPaged call
func WithPageSize(pageSize int) ClientOptionFunc {
	return func(c *Client) {
		c.pageSize = min(max(pageSize, 1), MaxPageSize)
	}
}

// WithRequestTimeout bounds each request made to the node. A zero value disables the timeout
func WithRequestTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.requestTimeout = timeout
	}
}
