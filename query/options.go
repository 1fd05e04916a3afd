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
	"log/slog"
)

const (
	DefaultConcurrency = 8

	// NoNominatorsPlaceholder is listed as the only nominator of a waiting validator nobody nominates
	NoNominatorsPlaceholder = "None"
)

type ClientOptionFunc func(*Client)

// WithLogger specifies the logger to use. The default is slog.Default()
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithConcurrency specifies how many per-account lookups may be in flight at once
func WithConcurrency(concurrency int) ClientOptionFunc {
	return func(c *Client) {
		c.concurrency = max(concurrency, 1)
	}
}

// WithoutNominatorPlaceholder leaves the nominator list of an unnominated
// waiting validator empty instead of listing NoNominatorsPlaceholder
func WithoutNominatorPlaceholder() ClientOptionFunc {
	return func(c *Client) {
		c.nominatorPlaceholder = false
	}
}
