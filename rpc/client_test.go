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

package rpc_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blinklabs-io/substate/chain"
	"github.com/blinklabs-io/substate/query"
	"github.com/blinklabs-io/substate/rpc"
	"github.com/blinklabs-io/substate/ss58"
	"github.com/blinklabs-io/substate/staking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	hangKey = "0xdead"
	dropKey = "0xd0"
)

type testRequest struct {
	Id     uint64            `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type testResponse struct {
	Version string     `json:"jsonrpc"`
	Id      uint64     `json:"id"`
	Result  any        `json:"result,omitempty"`
	Error   *rpc.Error `json:"error,omitempty"`
}

// testNode answers the handful of JSON-RPC methods the client uses from in-memory state
type testNode struct {
	t         *testing.T
	mu        sync.Mutex
	storage   map[string]string
	finalized *chain.Hash
	headers   map[chain.Hash]chain.Header
	pageCalls int
	atSeen    []string
	hangSeen  chan struct{}
}

func newTestNode(t *testing.T) *testNode {
	return &testNode{
		t:        t,
		storage:  make(map[string]string),
		headers:  make(map[chain.Hash]chain.Header),
		hangSeen: make(chan struct{}, 1),
	}
}

func (n *testNode) set(key string, value string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.storage[key] = value
}

// start serves the node and connects a client to it. The returned function closes both
func (n *testNode) start(
	t *testing.T,
	opts ...rpc.ClientOptionFunc,
) (*rpc.Client, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(n.serve))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := rpc.Dial(ctx, "ws"+strings.TrimPrefix(server.URL, "http"), opts...)
	if err != nil {
		server.Close()
		t.Fatalf("dial test node: %s", err)
	}
	return client, func() {
		_ = client.Close()
		server.Close()
	}
}

func (n *testNode) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		n.t.Errorf("websocket accept: %s", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "handler exited")
	ctx := r.Context()
	var responders sync.WaitGroup
	defer responders.Wait()
	for {
		var req testRequest
		if err := wsjson.Read(ctx, conn, &req); err != nil {
			return
		}
		if req.Method == "state_getStorage" {
			var key string
			_ = json.Unmarshal(req.Params[0], &key)
			switch key {
			case hangKey:
				n.hangSeen <- struct{}{}
				continue
			case dropKey:
				_ = conn.Close(websocket.StatusGoingAway, "node shutting down")
				return
			}
		}
		resp := n.handle(req)
		// Answer concurrently so responses can arrive out of request order
		responders.Add(1)
		go func() {
			defer responders.Done()
			_ = wsjson.Write(ctx, conn, resp)
		}()
	}
}

func (n *testNode) handle(req testRequest) testResponse {
	n.mu.Lock()
	defer n.mu.Unlock()
	resp := testResponse{Version: "2.0", Id: req.Id}
	param := func(i int, dest any) {
		if i < len(req.Params) {
			_ = json.Unmarshal(req.Params[i], dest)
		}
	}
	switch req.Method {
	case "state_getKeysPaged":
		n.pageCalls++
		var prefix string
		var count int
		var startKey, at *string
		param(0, &prefix)
		param(1, &count)
		param(2, &startKey)
		param(3, &at)
		if at != nil {
			n.atSeen = append(n.atSeen, *at)
		}
		var keys []string
		for key := range n.storage {
			if strings.HasPrefix(key, prefix) && (startKey == nil || key > *startKey) {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		if len(keys) > count {
			keys = keys[:count]
		}
		resp.Result = append([]string{}, keys...)
	case "state_getStorage":
		var key string
		var at *string
		param(0, &key)
		param(1, &at)
		if at != nil {
			n.atSeen = append(n.atSeen, *at)
		}
		if value, ok := n.storage[key]; ok {
			resp.Result = value
		} else {
			resp.Result = json.RawMessage("null")
		}
	case "chain_getFinalizedHead":
		if n.finalized != nil {
			resp.Result = *n.finalized
		} else {
			resp.Result = json.RawMessage("null")
		}
	case "chain_getHeader":
		var hash chain.Hash
		param(0, &hash)
		if header, ok := n.headers[hash]; ok {
			resp.Result = header
		} else {
			resp.Result = json.RawMessage("null")
		}
	default:
		resp.Error = &rpc.Error{Code: -32601, Message: "Method not found"}
	}
	return resp
}

func TestEnumerateKeysPaged(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := newTestNode(t)
	for i := 0; i < 5; i++ {
		node.set(fmt.Sprintf("0xaa%02x", i), "0x00")
	}
	node.set("0xab00", "0x00")
	client, stop := node.start(t, rpc.WithPageSize(2))
	defer stop()

	keys, err := client.EnumerateKeys(context.Background(), []byte{0xaa}, nil)
	require.NoError(t, err)
	assert.Equal(
		t,
		[][]byte{{0xaa, 0}, {0xaa, 1}, {0xaa, 2}, {0xaa, 3}, {0xaa, 4}},
		keys,
	)
	// Two full pages and a short one
	node.mu.Lock()
	assert.Equal(t, 3, node.pageCalls)
	node.mu.Unlock()
}

func TestEnumerateKeysExactPages(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := newTestNode(t)
	for i := 0; i < 4; i++ {
		node.set(fmt.Sprintf("0xaa%02x", i), "0x00")
	}
	client, stop := node.start(t, rpc.WithPageSize(2))
	defer stop()

	keys, err := client.EnumerateKeys(context.Background(), []byte{0xaa}, nil)
	require.NoError(t, err)
	assert.Len(t, keys, 4)
	node.mu.Lock()
	assert.Equal(t, 3, node.pageCalls, "a full last page needs an empty page to confirm the end")
	node.mu.Unlock()
}

func TestFetchRaw(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := newTestNode(t)
	node.set("0x0102", "0x2a00000000")
	node.set("0x0103", "0x")
	client, stop := node.start(t)
	defer stop()
	ctx := context.Background()

	value, ok, err := client.FetchRaw(ctx, []byte{1, 2}, nil)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x2a, 0, 0, 0, 0}, value)

	value, ok, err = client.FetchRaw(ctx, []byte{1, 3}, nil)
	require.NoError(t, err)
	assert.True(t, ok, "an empty value is still present")
	assert.Empty(t, value)

	_, ok, err = client.FetchRaw(ctx, []byte{1, 4}, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAtBlockParam(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := newTestNode(t)
	client, stop := node.start(t)
	defer stop()
	at := chain.Hash{0xbe, 0xef}

	_, _, err := client.FetchRaw(context.Background(), []byte{1}, &at)
	require.NoError(t, err)
	_, err = client.EnumerateKeys(context.Background(), []byte{1}, &at)
	require.NoError(t, err)
	node.mu.Lock()
	defer node.mu.Unlock()
	assert.Equal(t, []string{at.String(), at.String()}, node.atSeen)
}

func TestFinalizedHeadAndHeader(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := newTestNode(t)
	client, stop := node.start(t)
	defer stop()
	ctx := context.Background()

	hash, err := client.FinalizedHead(ctx)
	require.NoError(t, err)
	assert.Nil(t, hash)

	head := chain.Hash{1, 2, 3}
	node.mu.Lock()
	node.finalized = &head
	node.headers[head] = chain.Header{
		ParentHash: chain.Hash{9},
		Number:     0x1b2c3d,
		Digest:     []string{"0x0642414245"},
	}
	node.mu.Unlock()

	hash, err = client.FinalizedHead(ctx)
	require.NoError(t, err)
	require.NotNil(t, hash)
	assert.Equal(t, head, *hash)

	header, err := client.Header(ctx, head)
	require.NoError(t, err)
	require.NotNil(t, header)
	assert.Equal(t, uint32(0x1b2c3d), header.Number)
	assert.Equal(t, chain.Hash{9}, header.ParentHash)
	assert.Equal(t, []string{"0x0642414245"}, header.Digest)

	header, err = client.Header(ctx, chain.Hash{4})
	require.NoError(t, err)
	assert.Nil(t, header)
}

func TestRPCError(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, stop := newTestNode(t).start(t)
	defer stop()
	err := client.Call(context.Background(), "system_unknown", nil)
	var rpcErr *rpc.Error
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, -32601, rpcErr.Code)
	assert.Contains(t, err.Error(), "system_unknown")
}

func TestConcurrentRequests(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := newTestNode(t)
	for i := 0; i < 50; i++ {
		node.set(fmt.Sprintf("0x%04x", i), fmt.Sprintf("0x%02x", i))
	}
	client, stop := node.start(t)
	defer stop()

	var wg sync.WaitGroup
	errs := make([]error, 50)
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, ok, err := client.FetchRaw(context.Background(), []byte{0, byte(i)}, nil)
			switch {
			case err != nil:
				errs[i] = err
			case !ok || len(value) != 1 || value[0] != byte(i):
				errs[i] = fmt.Errorf("key %d: got %x", i, value)
			}
		}()
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}
}

func TestRequestTimeout(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, stop := newTestNode(t).start(t, rpc.WithRequestTimeout(50*time.Millisecond))
	defer stop()
	_, _, err := client.FetchRaw(context.Background(), []byte{0xde, 0xad}, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseFailsPending(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := newTestNode(t)
	client, stop := node.start(t)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		_, _, err := client.FetchRaw(context.Background(), []byte{0xde, 0xad}, nil)
		errChan <- err
	}()
	<-node.hangSeen
	require.NoError(t, client.Close())
	select {
	case err := <-errChan:
		assert.ErrorIs(t, err, rpc.ErrClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("pending request was not released by Close")
	}

	_, err := client.FinalizedHead(context.Background())
	assert.ErrorIs(t, err, rpc.ErrClosed)
}

func TestConnectionLost(t *testing.T) {
	defer goleak.VerifyNone(t)
	client, stop := newTestNode(t).start(t)
	defer stop()

	_, _, err := client.FetchRaw(context.Background(), []byte{0xd0}, nil)
	require.ErrorIs(t, err, rpc.ErrClosed)
	assert.Contains(t, err.Error(), "connection lost")

	_, err = client.FinalizedHead(context.Background())
	assert.ErrorIs(t, err, rpc.ErrClosed)
}

func TestQueryOverRPC(t *testing.T) {
	defer goleak.VerifyNone(t)
	node := newTestNode(t)
	node.set("0x"+fmt.Sprintf("%x", staking.CurrentEra.Key()), "0x4d000000")
	client, stop := node.start(t)
	defer stop()

	q, err := query.New(client, ss58.FormatKusama)
	require.NoError(t, err)
	era, err := query.Require(q.PlannedEra(context.Background(), nil))
	require.NoError(t, err)
	assert.Equal(t, uint32(77), era)

	_, err = query.Require(q.SessionIndex(context.Background(), nil))
	assert.True(t, errors.Is(err, query.ErrNotFound))
}
