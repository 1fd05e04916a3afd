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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blinklabs-io/substate/query"
	"nhooyr.io/websocket"
)

var _ query.Source = (*Client)(nil)

// Client is a JSON-RPC 2.0 client for a Substrate node's websocket endpoint. Requests
// may be issued concurrently; responses are matched to callers by request ID
type Client struct {
	conn           *websocket.Conn
	logger         *slog.Logger
	pageSize       int
	requestTimeout time.Duration
	nextId         atomic.Uint64
	pendingMutex   sync.Mutex
	pending        map[uint64]chan response
	err            error
	readCancel     context.CancelFunc
	doneChan       chan struct{}
	waitGroup      sync.WaitGroup
	onceClose      sync.Once
}

type request struct {
	Version string `json:"jsonrpc"`
	Id      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type response struct {
	Id     *uint64         `json:"id"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result"`
	Error  *Error          `json:"error"`
}

// Dial connects to the node at url (ws:// or wss://)
func Dial(
	ctx context.Context,
	url string,
	opts ...ClientOptionFunc,
) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewClient(conn, opts...), nil
}

// NewClient wraps an established websocket connection and starts reading responses from it.
// The client takes ownership of conn
func NewClient(conn *websocket.Conn, opts ...ClientOptionFunc) *Client {
	c := &Client{
		conn:           conn,
		pageSize:       DefaultPageSize,
		requestTimeout: DefaultRequestTimeout,
		pending:        make(map[uint64]chan response),
		doneChan:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	conn.SetReadLimit(maxMessageSize)
	readCtx, cancel := context.WithCancel(context.Background())
	c.readCancel = cancel
	c.waitGroup.Add(1)
	go c.readLoop(readCtx)
	return c
}

// Close shuts down the connection and waits for the reader to exit. Pending requests fail with ErrClosed
func (c *Client) Close() error {
	var err error
	c.onceClose.Do(func() {
		close(c.doneChan)
		err = c.conn.Close(websocket.StatusNormalClosure, "")
		c.readCancel()
		c.waitGroup.Wait()
	})
	return err
}

// Call invokes method with params and decodes the result into result, which may be nil to discard it
func (c *Client) Call(
	ctx context.Context,
	method string,
	result any,
	params ...any,
) error {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}
	if params == nil {
		params = []any{}
	}
	id := c.nextId.Add(1)
	data, err := json.Marshal(request{
		Version: "2.0",
		Id:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}
	respChan := make(chan response, 1)
	c.pendingMutex.Lock()
	if c.err != nil {
		err := c.err
		c.pendingMutex.Unlock()
		return err
	}
	c.pending[id] = respChan
	c.pendingMutex.Unlock()
	defer c.forget(id)

	c.logger.Debug(
		"sending request",
		"component", "rpc",
		"method", method,
		"id", id,
	)
	if err := c.conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("send %s: %w", method, err)
	}
	select {
	case resp, ok := <-respChan:
		if !ok {
			return c.closedErr()
		}
		if resp.Error != nil {
			return fmt.Errorf("%s: %w", method, resp.Error)
		}
		if result == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", method, ctx.Err())
	}
}

func (c *Client) forget(id uint64) {
	c.pendingMutex.Lock()
	defer c.pendingMutex.Unlock()
	delete(c.pending, id)
}

func (c *Client) closedErr() error {
	c.pendingMutex.Lock()
	defer c.pendingMutex.Unlock()
	return c.err
}

func (c *Client) readLoop(ctx context.Context) {
	defer c.waitGroup.Done()
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			c.shutdown(err)
			return
		}
		var resp response
		if err := json.Unmarshal(data, &resp); err != nil {
			c.logger.Warn(
				"discarding malformed message",
				"component", "rpc",
				"error", err,
			)
			continue
		}
		if resp.Id == nil {
			c.logger.Debug(
				"ignoring notification",
				"component", "rpc",
				"method", resp.Method,
			)
			continue
		}
		c.pendingMutex.Lock()
		respChan, ok := c.pending[*resp.Id]
		delete(c.pending, *resp.Id)
		c.pendingMutex.Unlock()
		if !ok {
			c.logger.Debug(
				"ignoring response to abandoned request",
				"component", "rpc",
				"id", *resp.Id,
			)
			continue
		}
		respChan <- resp
	}
}

// shutdown records why the reader stopped and fails every pending request
func (c *Client) shutdown(readErr error) {
	c.pendingMutex.Lock()
	defer c.pendingMutex.Unlock()
	select {
	case <-c.doneChan:
		c.err = ErrClosed
	default:
		c.err = fmt.Errorf("%w: connection lost: %w", ErrClosed, readErr)
		c.logger.Warn(
			"connection to node lost",
			"component", "rpc",
			"error", readErr,
		)
	}
	for id, respChan := range c.pending {
		close(respChan)
		delete(c.pending, id)
	}
}
