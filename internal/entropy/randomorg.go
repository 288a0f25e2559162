package entropy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const defaultEndpoint = "https://api.random.org/json-rpc/4/invoke"

// Client draws true random numbers from random.org through a local pool and
// falls back to crypto/rand whenever the API is unavailable.
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client

	mu    sync.Mutex
	pool  []float64
	calls uint64
}

// NewClient creates a random.org client. Returns nil if apiKey is empty.
func NewClient(apiKey string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// WithEndpoint points the client at another JSON-RPC endpoint.
func (c *Client) WithEndpoint(url string) *Client {
	if c != nil {
		c.endpoint = url
	}
	return c
}

// Float64 returns a value in [0, 1), refilling the pool when it runs low.
func (c *Client) Float64() float64 {
	if c == nil {
		return cryptoFloat()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pool) < refillBelow {
		if err := c.refill(context.Background()); err != nil {
			slog.Debug("random.org refill failed", "error", err)
		}
	}
	if len(c.pool) == 0 {
		return cryptoFloat()
	}

	val := c.pool[0]
	c.pool = c.pool[1:]
	return val
}

func (c *Client) Intn(n int) int { return intn(c.Float64(), n) }

// Enabled reports whether the client has an API key.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// Pooled returns how many draws are buffered.
func (c *Client) Pooled() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pool)
}

// rpcRequest is a random.org JSON-RPC 4 call for decimal fractions.
type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      uint64    `json:"id"`
}

type rpcParams struct {
	APIKey        string `json:"apiKey"`
	N             int    `json:"n"`
	DecimalPlaces int    `json:"decimalPlaces"`
}

type rpcResponse struct {
	Result *struct {
		Random struct {
			Data []float64 `json:"data"`
		} `json:"random"`
		BitsLeft     int `json:"bitsLeft"`
		RequestsLeft int `json:"requestsLeft"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

const (
	refillBatch  = 100
	refillBelow  = 10
	fractionBits = 6
)

func (c *Client) refill(ctx context.Context) error {
	c.calls++
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  "generateDecimalFractions",
		Params:  rpcParams{APIKey: c.apiKey, N: refillBatch, DecimalPlaces: fractionBits},
		ID:      c.calls,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: status %d", resp.StatusCode)
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if out.Error != nil {
		return fmt.Errorf("api error %d: %s", out.Error.Code, out.Error.Message)
	}
	if out.Result == nil {
		return fmt.Errorf("api: empty result")
	}

	added := 0
	for _, v := range out.Result.Random.Data {
		if v >= 0 && v < 1 {
			c.pool = append(c.pool, v)
			added++
		}
	}
	slog.Debug("random.org pool refilled", "added", added, "requests_left", out.Result.RequestsLeft)
	return nil
}

// New picks the source for a session: seeded when seed is non-zero, else
// random.org when a key is set, else crypto/rand.
func New(seed uint64, randomOrgKey string) Source {
	if seed != 0 {
		return NewSeeded(seed)
	}
	if c := NewClient(randomOrgKey); c != nil {
		return c
	}
	return Crypto{}
}
