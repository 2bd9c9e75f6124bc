package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/career-auditor/internal/logger"
)

const (
	defaultTimeout   = 8 * time.Second
	defaultUserAgent = "spigell/career-auditor"
	maxBodyBytes     = 8 << 20
)

// ErrAllGatewaysFailed is returned when every gateway of a cascade failed for a target.
var ErrAllGatewaysFailed = errors.New("all gateways failed")

// Fetcher retrieves the raw text behind an address.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (string, error)
}

// Config configures the gateway cascade.
type Config struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	Gateways          []string      `mapstructure:"gateways"`
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
	Burst             int           `mapstructure:"burst"`
	UserAgent         string        `mapstructure:"user-agent"`
}

// Cascade tries its gateways in random order until one returns the document.
type Cascade struct {
	gateways  []Gateway
	client    *http.Client
	limiter   *HostLimiter
	logger    *zap.Logger
	timeout   time.Duration
	userAgent string
	shuffle   func([]Gateway)
}

type Option func(*Cascade)

// WithGateways replaces the resolved gateways.
func WithGateways(gws ...Gateway) Option {
	return func(c *Cascade) {
		c.gateways = gws
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Cascade) {
		c.client = client
	}
}

// WithOrder replaces the random gateway ordering.
func WithOrder(order func([]Gateway)) Option {
	return func(c *Cascade) {
		c.shuffle = order
	}
}

// InOrder keeps the configured gateway order.
func InOrder([]Gateway) {}

func NewCascade(cfg Config, log *zap.Logger, opts ...Option) (*Cascade, error) {
	gws, err := Gateways(cfg.Gateways)
	if err != nil {
		return nil, err
	}

	c := &Cascade{
		gateways:  gws,
		client:    &http.Client{},
		limiter:   NewHostLimiter(cfg.RequestsPerSecond, cfg.Burst),
		logger:    logger.WithFields(log),
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		shuffle: func(g []Gateway) {
			rand.Shuffle(len(g), func(i, j int) { g[i], g[j] = g[j], g[i] })
		},
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch returns the document at target through the first gateway that succeeds.
// Non-2xx responses, timeouts and undecodable bodies fall through to the next gateway.
func (c *Cascade) Fetch(ctx context.Context, target string) (string, error) {
	order := make([]Gateway, len(c.gateways))
	copy(order, c.gateways)
	c.shuffle(order)

	log := c.logger.With(zap.String(logger.FieldURL, target))

	var lastErr error
	for _, gw := range order {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		body, err := c.try(ctx, gw, target)
		if err == nil {
			log.Debug("fetched", zap.String("gateway", gw.Name), zap.Int("bytes", len(body)))
			return body, nil
		}

		log.Debug("gateway failed", zap.String("gateway", gw.Name), zap.Error(err))
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("no gateways configured")
	}
	return "", fmt.Errorf("%w for %s: %w", ErrAllGatewaysFailed, target, lastErr)
}

func (c *Cascade) try(ctx context.Context, gw Gateway, target string) (string, error) {
	addr := gw.URL(target)
	if err := c.limiter.WaitURL(ctx, addr); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", err
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(io.LimitReader(reader, maxBodyBytes))
	if err != nil {
		return "", err
	}

	return gw.Decode(data)
}
