package notify

import (
	"context"
	"errors"
	"time"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/circuitbreaker"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"golang.org/x/time/rate"
)

type Options struct {
	// SendsPerMinute paces outbound mail; zero or less disables pacing.
	SendsPerMinute int
	Breaker        *circuitbreaker.Config
}

// Notifier sends the waitlist confirmation. Every failure comes back as a
// NOTIFICATION_ERROR; deciding to ignore it is the caller's business.
type Notifier struct {
	logger    *log.Logger
	transport Transport
	limiter   *rate.Limiter
	breaker   circuitbreaker.CircuitBreaker
}

func NewNotifier(logger *log.Logger, transport Transport, opts Options) *Notifier {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.SendsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.SendsPerMinute)), opts.SendsPerMinute)
	}

	breakerCfg := opts.Breaker
	if breakerCfg == nil {
		breakerCfg = circuitbreaker.DefaultConfig()
	}
	if breakerCfg.OnStateChange == nil {
		breakerCfg.OnStateChange = func(from, to circuitbreaker.CircuitState) {
			logger.Warn("Mail transport circuit changed state", "from", from.String(), "to", to.String())
		}
	}

	return &Notifier{
		logger:    logger,
		transport: transport,
		limiter:   limiter,
		breaker:   circuitbreaker.NewCircuitBreaker(breakerCfg),
	}
}

func (n *Notifier) Send(ctx context.Context, name, email string) error {
	if n == nil || n.transport == nil {
		return apperrors.NewNotificationError("mail transport is not configured", nil)
	}

	content, err := RenderConfirmation(name)
	if err != nil {
		return apperrors.NewNotificationError("failed to render confirmation", err)
	}

	if checker, ok := n.transport.(Checker); ok {
		if err := checker.Check(email, content); err != nil {
			return apperrors.NewNotificationError("confirmation rejected before sending", err)
		}
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return apperrors.NewNotificationError("mail pacing wait aborted", err)
	}

	err = n.breaker.Call(func() error {
		return n.transport.Send(ctx, email, content)
	})
	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return apperrors.NewNotificationError("mail transport circuit is open", err)
	case err != nil:
		return apperrors.NewNotificationError("failed to send confirmation", err)
	}

	log.GetLoggerInstanceFromContext(ctx, n.logger).Info("Confirmation email sent")
	return nil
}

// TransportState is reported by the health check.
func (n *Notifier) TransportState() circuitbreaker.CircuitState {
	if n == nil || n.breaker == nil {
		return circuitbreaker.Open
	}
	return n.breaker.State()
}
