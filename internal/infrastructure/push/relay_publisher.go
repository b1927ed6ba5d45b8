package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	pushdomain "github.com/radiogagalight/f1-together/internal/domain/push"
	"github.com/radiogagalight/f1-together/internal/platform/logging"
	"github.com/radiogagalight/f1-together/internal/platform/resilience"
)

var errRelayTransient = crerr.New("push relay transient failure")

type RelayPublisherConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// RelayPublisher posts web push deliveries to the relay over fasthttp. Push
// delivery is best-effort and happens off the request path, so failures are
// returned for logging but never abort the calling flow.
type RelayPublisher struct {
	client         *fasthttp.Client
	publishURL     string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewRelayPublisher(cfg RelayPublisherConfig, logger *logging.Logger) *RelayPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &RelayPublisher{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		publishURL:     strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/") + "/v1/deliveries",
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type relayDelivery struct {
	Subscription json.RawMessage `json:"subscription"`
	Title        string          `json:"title"`
	Body         string          `json:"body"`
	URL          string          `json:"url,omitempty"`
}

func (p *RelayPublisher) Publish(ctx context.Context, msg pushdomain.Message) error {
	if len(msg.Subscription) == 0 {
		return crerr.New("push message has no subscription payload")
	}

	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "push relay circuit breaker rejected delivery", "state", p.breaker.State())
			return fmt.Errorf("push relay is temporarily unavailable: %w", err)
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	encoder := sonic.ConfigDefault.NewEncoder(buf)
	if err := encoder.Encode(relayDelivery{
		Subscription: json.RawMessage(msg.Subscription),
		Title:        msg.Title,
		Body:         msg.Body,
		URL:          msg.URL,
	}); err != nil {
		return crerr.Wrap(err, "marshal relay delivery")
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.publishURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBody(buf.B)

	deadline := time.Now().Add(p.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := p.client.DoDeadline(req, resp, deadline); err != nil {
		callErr := crerr.Mark(crerr.Wrap(err, "post relay delivery"), errRelayTransient)
		p.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	switch {
	case status/100 == 2:
		p.recordCircuitResult(nil)
		return nil
	case status == http.StatusGone || status == http.StatusNotFound:
		// The browser endpoint was dropped; the caller should delete the
		// stored subscription.
		p.recordCircuitResult(nil)
		return pushdomain.ErrSubscriptionGone
	case status == http.StatusTooManyRequests || status >= 500:
		callErr := crerr.Mark(crerr.Newf("relay delivery failed with status %d", status), errRelayTransient)
		p.recordCircuitResult(callErr)
		return callErr
	default:
		callErr := crerr.Newf("relay delivery failed with status %d: %s", status, strings.TrimSpace(string(resp.Body())))
		p.recordCircuitResult(callErr)
		return callErr
	}
}

func (p *RelayPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if crerr.Is(err, errRelayTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}
