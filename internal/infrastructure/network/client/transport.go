package client

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// transport carries JSON-RPC calls to one gateway endpoint.
type transport interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
	BatchCallContext(ctx context.Context, batch []rpc.BatchElem) error
	Close()
}

// dialTransport picks the transport by URL scheme: ws and wss go through the
// go-ethereum rpc client, http and https through fasthttp.
func dialTransport(ctx context.Context, endpoint string, timeout time.Duration) (transport, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "ws", "wss":
		c, err := rpc.DialOptions(ctx, endpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to dial %s: %w", endpoint, err)
		}
		return c, nil
	case "http", "https":
		return newHTTPTransport(endpoint, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
}

type jsonrpcRequest struct {
	Version string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *jsonrpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type jsonrpcResponse struct {
	ID     uint64              `json:"id"`
	Result jsoniter.RawMessage `json:"result"`
	Error  *jsonrpcError       `json:"error"`
}

// httpTransport is a JSON-RPC over HTTP POST client built on fasthttp.
type httpTransport struct {
	client   *fasthttp.Client
	endpoint string
	timeout  time.Duration
	nextID   atomic.Uint64
}

func newHTTPTransport(endpoint string, timeout time.Duration) *httpTransport {
	return &httpTransport{
		client:   &fasthttp.Client{Name: "hub_balance"},
		endpoint: endpoint,
		timeout:  timeout,
	}
}

func (t *httpTransport) request(method string, args []any) jsonrpcRequest {
	if args == nil {
		args = []any{}
	}
	return jsonrpcRequest{Version: "2.0", ID: t.nextID.Add(1), Method: method, Params: args}
}

func (t *httpTransport) CallContext(ctx context.Context, result any, method string, args ...any) error {
	var resp jsonrpcResponse
	if err := t.post(ctx, t.request(method, args), &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	if result == nil || isNullResult(resp.Result) {
		return nil
	}
	if err := json.Unmarshal(resp.Result, result); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", method, err)
	}
	return nil
}

// BatchCallContext sends all elements in one HTTP request. Per-element failures
// are set on the element; the returned error is for the request as a whole.
func (t *httpTransport) BatchCallContext(ctx context.Context, batch []rpc.BatchElem) error {
	if len(batch) == 0 {
		return nil
	}
	reqs := make([]jsonrpcRequest, len(batch))
	byID := make(map[uint64]int, len(batch))
	for i, elem := range batch {
		reqs[i] = t.request(elem.Method, elem.Args)
		byID[reqs[i].ID] = i
	}

	var resps []jsonrpcResponse
	if err := t.post(ctx, reqs, &resps); err != nil {
		return err
	}

	seen := make(map[int]struct{}, len(resps))
	for _, resp := range resps {
		i, ok := byID[resp.ID]
		if !ok {
			continue
		}
		seen[i] = struct{}{}
		switch {
		case resp.Error != nil:
			batch[i].Error = resp.Error
		case batch[i].Result != nil && !isNullResult(resp.Result):
			if err := json.Unmarshal(resp.Result, batch[i].Result); err != nil {
				batch[i].Error = fmt.Errorf("failed to decode %s result: %w", batch[i].Method, err)
			}
		}
	}
	for i := range batch {
		if _, ok := seen[i]; !ok {
			batch[i].Error = fmt.Errorf("missing response for %s", batch[i].Method)
		}
	}
	return nil
}

// isNullResult reports a missing or null result; the target is left unset.
func isNullResult(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, nullResult)
}

var nullResult = []byte("null")

func (t *httpTransport) post(ctx context.Context, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(t.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(payload)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		err = t.client.DoDeadline(req, resp, deadline)
	} else {
		err = t.client.DoTimeout(req, resp, t.timeout)
	}
	if err != nil {
		return fmt.Errorf("failed to execute request to %s: %w", t.endpoint, err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("request to %s failed with status %d: %s", t.endpoint, resp.StatusCode(), string(resp.Body()))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", t.endpoint, err)
	}
	return nil
}

func (t *httpTransport) Close() {
	t.client.CloseIdleConnections()
}
