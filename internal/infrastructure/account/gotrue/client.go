package gotrue

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/radiogagalight/f1-together/internal/domain/user"
	"github.com/radiogagalight/f1-together/internal/platform/logging"
	"github.com/radiogagalight/f1-together/internal/platform/resilience"
	"github.com/radiogagalight/f1-together/internal/usecase"
)

var errGoTrueTransient = crerr.New("gotrue transient failure")

type ClientConfig struct {
	BaseURL        string
	AnonKey        string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client verifies Supabase access tokens against the GoTrue user endpoint.
// Every authenticated request funnels through here, so the breaker keeps an
// auth outage from tying up handler goroutines.
type Client struct {
	httpClient     *http.Client
	userURL        string
	anonKey        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userURL:        strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/") + "/auth/v1/user",
		anonKey:        strings.TrimSpace(cfg.AnonKey),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gotrue circuit breaker rejected request", "state", c.breaker.State())
			return user.Principal{}, crerr.Wrap(usecase.ErrDependencyUnavailable, "gotrue is temporarily unavailable")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create gotrue user request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if c.anonKey != "" {
		req.Header.Set("apikey", c.anonKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		callErr := crerr.Mark(crerr.Wrap(err, "request gotrue user"), errGoTrueTransient)
		c.recordCircuitResult(callErr)
		return user.Principal{}, crerr.Wrap(usecase.ErrDependencyUnavailable, callErr.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		callErr := crerr.Mark(crerr.Wrap(err, "read gotrue user response"), errGoTrueTransient)
		c.recordCircuitResult(callErr)
		return user.Principal{}, callErr
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.recordCircuitResult(nil)
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token rejected by gotrue")
	case resp.StatusCode != http.StatusOK:
		callErr := crerr.Newf("gotrue user endpoint returned status %d", resp.StatusCode)
		if isRetryableStatus(resp.StatusCode) {
			callErr = crerr.Mark(callErr, errGoTrueTransient)
		}
		c.recordCircuitResult(callErr)
		c.logger.WarnContext(ctx, "gotrue user endpoint non-200", "status_code", resp.StatusCode)
		return user.Principal{}, crerr.Wrap(usecase.ErrDependencyUnavailable, callErr.Error())
	}

	var decoded gotrueUserResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		c.recordCircuitResult(nil)
		return user.Principal{}, crerr.Wrap(err, "unmarshal gotrue user response")
	}
	if strings.TrimSpace(decoded.ID) == "" {
		c.recordCircuitResult(nil)
		return user.Principal{}, crerr.New("invalid gotrue user response: id is empty")
	}

	c.recordCircuitResult(nil)
	return user.Principal{
		UserID: decoded.ID,
		Email:  decoded.Email,
	}, nil
}

func (c *Client) recordCircuitResult(err error) {
	if !c.circuitEnabled {
		return
	}
	if err == nil {
		c.breaker.RecordSuccess()
		return
	}
	if crerr.Is(err, errGoTrueTransient) {
		c.breaker.RecordFailure()
		return
	}
	c.breaker.RecordSuccess()
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

type gotrueUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
