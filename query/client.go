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
	"context"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/substate/chain"
	"github.com/blinklabs-io/substate/scale"
	"github.com/blinklabs-io/substate/ss58"
	"github.com/blinklabs-io/substate/staking"
	"golang.org/x/sync/errgroup"
)

// Client reads staking state from a node through a Source
type Client struct {
	source               Source
	codec                ss58.Codec
	logger               *slog.Logger
	concurrency          int
	nominatorPlaceholder bool
}

// New returns a Client rendering addresses in the given network format
func New(
	source Source,
	format ss58.Format,
	opts ...ClientOptionFunc,
) (*Client, error) {
	codec, err := ss58.NewCodec(format)
	if err != nil {
		return nil, err
	}
	c := &Client{
		source:               source,
		codec:                codec,
		concurrency:          DefaultConcurrency,
		nominatorPlaceholder: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// Codec returns the address codec used to render accounts
func (c *Client) Codec() ss58.Codec {
	return c.codec
}

// FinalizedHead returns the latest finalized block hash and its header. Either
// may be nil if the node has not finalized a block or does not know its header
func (c *Client) FinalizedHead(
	ctx context.Context,
) (*chain.Hash, *chain.Header, error) {
	hash, err := c.source.FinalizedHead(ctx)
	if err != nil {
		return nil, nil, &TransportError{Op: "finalized head", Err: err}
	}
	if hash == nil {
		return nil, nil, nil
	}
	header, err := c.source.Header(ctx, *hash)
	if err != nil {
		return hash, nil, &TransportError{
			Op:  "header " + hash.String(),
			Err: err,
		}
	}
	return hash, header, nil
}

// ActiveEra returns the era currently being rewarded
func (c *Client) ActiveEra(
	ctx context.Context,
	at *chain.Hash,
) (*staking.ActiveEraInfo, error) {
	return fetchValue[staking.ActiveEraInfo](ctx, c, staking.ActiveEra, staking.ActiveEra.Key(), at)
}

// PlannedEra returns the latest era for which validators have been elected
func (c *Client) PlannedEra(
	ctx context.Context,
	at *chain.Hash,
) (*staking.EraIndex, error) {
	v, err := fetchValue[u32Value](ctx, c, staking.CurrentEra, staking.CurrentEra.Key(), at)
	if v == nil {
		return nil, err
	}
	return &v.Value, nil
}

// SessionIndex returns the index of the current session
func (c *Client) SessionIndex(
	ctx context.Context,
	at *chain.Hash,
) (*staking.SessionIndex, error) {
	v, err := fetchValue[u32Value](ctx, c, staking.CurrentIndex, staking.CurrentIndex.Key(), at)
	if v == nil {
		return nil, err
	}
	return &v.Value, nil
}

// SessionValidators returns the validator set of the current session. It is
// nil when the session module holds no validator set
func (c *Client) SessionValidators(
	ctx context.Context,
	at *chain.Hash,
) ([]chain.AccountId, error) {
	v, err := fetchValue[chain.AccountIds](
		ctx,
		c,
		staking.SessionValidators,
		staking.SessionValidators.Key(),
		at,
	)
	if v == nil {
		return nil, err
	}
	return *v, nil
}

// QueuedValidators returns the election result queued for the next session
func (c *Client) QueuedValidators(
	ctx context.Context,
	at *chain.Hash,
) (*staking.ElectionResult, error) {
	return fetchValue[staking.ElectionResult](
		ctx,
		c,
		staking.QueuedElected,
		staking.QueuedElected.Key(),
		at,
	)
}

func (c *Client) enumerate(
	ctx context.Context,
	item fmt.Stringer,
	prefix []byte,
	at *chain.Hash,
) ([][]byte, error) {
	keys, err := c.source.EnumerateKeys(ctx, prefix, at)
	if err != nil {
		return nil, &TransportError{Op: "enumerate " + item.String(), Err: err}
	}
	c.logger.Debug(
		"enumerated storage keys",
		"component", "query",
		"item", item.String(),
		"count", len(keys),
	)
	return keys, nil
}

// forEach runs fn for every index in [0, n) with bounded concurrency. Callers
// write results by index so output does not depend on completion order
func (c *Client) forEach(
	ctx context.Context,
	n int,
	fn func(ctx context.Context, i int) error,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// fetchValue reads and decodes the value at key, returning nil when nothing is stored there
func fetchValue[T any, PT interface {
	*T
	scale.Decodable
}](
	ctx context.Context,
	c *Client,
	item fmt.Stringer,
	key []byte,
	at *chain.Hash,
) (*T, error) {
	raw, ok, err := c.source.FetchRaw(ctx, key, at)
	if err != nil {
		return nil, &TransportError{Op: "fetch " + item.String(), Err: err}
	}
	if !ok {
		return nil, nil
	}
	var v T
	if _, err := scale.Unmarshal(raw, PT(&v)); err != nil {
		return nil, &KeyError{
			Item: item.String(),
			Key:  key,
			Err:  err,
		}
	}
	return &v, nil
}

// u32Value wraps a bare u32 storage value
type u32Value struct {
	Value uint32
}

func (u *u32Value) DecodeScale(d *scale.Decoder) error {
	var err error
	u.Value, err = d.ReadU32()
	return err
}
