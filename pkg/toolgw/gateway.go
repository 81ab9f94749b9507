package toolgw

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"admissions-ai-be/internal/pkg/logger"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Gateway wraps an MCP server connection with the resilience the chat path
// needs: bounded retries with backoff, a periodic liveness probe, and lazy
// reconnection when the session has gone stale.
type Gateway struct {
	endpoint      string
	callTimeout   time.Duration
	retryBase     time.Duration
	maxAttempts   int
	probeInterval time.Duration
	logger        logger.ILogger

	mu      sync.Mutex
	session *mcp.ClientSession
	healthy bool

	stopProbe chan struct{}
	probeOnce sync.Once

	// call performs one attempt; swapped out in tests.
	call func(ctx context.Context, name string, arguments map[string]interface{}) (string, error)
}

type Config struct {
	Endpoint      string
	CallTimeout   time.Duration
	RetryBase     time.Duration
	MaxAttempts   int
	ProbeInterval time.Duration
}

func NewGateway(cfg Config, log logger.ILogger) *Gateway {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 15 * time.Second
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 2 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.ProbeInterval <= 0 {
		cfg.ProbeInterval = 30 * time.Second
	}
	g := &Gateway{
		endpoint:      cfg.Endpoint,
		callTimeout:   cfg.CallTimeout,
		retryBase:     cfg.RetryBase,
		maxAttempts:   cfg.MaxAttempts,
		probeInterval: cfg.ProbeInterval,
		logger:        log,
		stopProbe:     make(chan struct{}),
	}
	g.call = g.callOnce
	return g
}

// connect establishes a fresh session, replacing any stale one.
func (g *Gateway) connect(ctx context.Context) (*mcp.ClientSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session != nil {
		return g.session, nil
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "admissions-ai-be",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.SSEClientTransport{Endpoint: g.endpoint}, nil)
	if err != nil {
		g.healthy = false
		return nil, fmt.Errorf("connect mcp server: %w", err)
	}

	g.session = session
	g.healthy = true
	g.logger.Info("toolgw", "connected to mcp server", map[string]interface{}{
		"endpoint": g.endpoint,
	})
	return session, nil
}

// drop discards the current session so the next call reconnects.
func (g *Gateway) drop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session != nil {
		_ = g.session.Close()
		g.session = nil
	}
	g.healthy = false
}

// CallTool invokes a named tool with bounded retries. Each attempt gets its
// own timeout; the delay between attempts doubles from the base. A caller
// cancellation is terminal and is never retried.
func (g *Gateway) CallTool(ctx context.Context, name string, arguments map[string]interface{}) (string, error) {
	var lastErr error
	delay := g.retryBase

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		result, err := g.call(ctx, name, arguments)
		if err == nil {
			return result, nil
		}
		lastErr = err
		g.drop()

		// A timed-out or cancelled call is terminal. Retrying a call that
		// already ran its full budget only multiplies the caller's wait.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}

		g.logger.Warn("toolgw", "tool call failed", map[string]interface{}{
			"tool":    name,
			"attempt": attempt,
			"error":   err.Error(),
		})

		if attempt < g.maxAttempts {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			delay *= 2
		}
	}

	return "", fmt.Errorf("tool %s failed after %d attempts: %w", name, g.maxAttempts, lastErr)
}

func (g *Gateway) callOnce(ctx context.Context, name string, arguments map[string]interface{}) (string, error) {
	session, err := g.connect(ctx)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	result, err := session.CallTool(callCtx, &mcp.CallToolParams{
		Name:      name,
		Arguments: arguments,
	})
	if err != nil {
		return "", err
	}
	if result.IsError {
		return "", fmt.Errorf("tool %s returned an error result", name)
	}

	var sb []byte
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			sb = append(sb, text.Text...)
		}
	}
	return string(sb), nil
}

// ListTools exposes the server's tool inventory, mostly for the health
// endpoint and the probe.
func (g *Gateway) ListTools(ctx context.Context) ([]string, error) {
	session, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	result, err := session.ListTools(callCtx, &mcp.ListToolsParams{})
	if err != nil {
		g.drop()
		return nil, err
	}

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	return names, nil
}

// Healthy reports the state observed by the last probe or call.
func (g *Gateway) Healthy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.healthy
}

// StartProbe launches the background liveness loop.
func (g *Gateway) StartProbe() {
	g.probeOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(g.probeInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					g.probeTick()
				case <-g.stopProbe:
					return
				}
			}
		}()
	})
}

// probeTick checks liveness of the session we already have. It never dials:
// with no session there is nothing to probe, and a failed check only marks
// the gateway unhealthy so the next real call reconnects.
func (g *Gateway) probeTick() {
	g.mu.Lock()
	session := g.session
	g.mu.Unlock()
	if session == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), g.callTimeout)
	defer cancel()

	if _, err := session.ListTools(ctx, &mcp.ListToolsParams{}); err != nil {
		g.logger.Warn("toolgw", "health probe failed, dropping session", map[string]interface{}{
			"error": err.Error(),
		})
		g.drop()
	}
}

// Close stops the probe and closes the session.
func (g *Gateway) Close() {
	close(g.stopProbe)
	g.drop()
}
