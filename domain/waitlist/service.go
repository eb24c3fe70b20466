package waitlist

import (
	"context"
	"strings"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	"github.com/akeren/waitlist-api/pkg/besteffort"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=service.go -destination=mock_service_test.go -package=waitlist

const tracerName = "github.com/akeren/waitlist-api/domain/waitlist"

type SubmissionState string

const (
	StateValidating        SubmissionState = "validating"
	StateCheckingDuplicate SubmissionState = "checking_duplicate"
	StateWriting           SubmissionState = "writing"
	StateNotifying         SubmissionState = "notifying"
	StateResponding        SubmissionState = "responding"
	StateSucceeded         SubmissionState = "succeeded"
	StateAborted           SubmissionState = "aborted"
)

const (
	OutcomeAdded       = "added"
	OutcomeInvalid     = "invalid"
	OutcomeDuplicate   = "duplicate"
	OutcomeUnavailable = "unavailable"
)

// Outcome buckets a Submit result for metrics and span attributes.
func Outcome(err error) string {
	if err == nil {
		return OutcomeAdded
	}
	switch apperrors.GetErrorType(err) {
	case apperrors.ErrorTypeInvalidRequest:
		return OutcomeInvalid
	case apperrors.ErrorTypeConflict:
		return OutcomeDuplicate
	default:
		return OutcomeUnavailable
	}
}

type WaitlistService interface {
	// Submit validates, deduplicates and stores one signup, then hands the
	// confirmation email to the background runner. The email outcome never
	// changes the result.
	Submit(ctx context.Context, req *SubmitRequest) (*SubmissionResponse, error)
}

// Notifier sends the confirmation email for a stored entry.
type Notifier interface {
	Send(ctx context.Context, name, email string) error
}

// TaskRunner runs best-effort work after the response is decided.
type TaskRunner interface {
	Go(ctx context.Context, name string, task besteffort.Task)
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	notifier   Notifier
	runner     TaskRunner
	tracer     trace.Tracer
}

type ServiceOption func(*waitlistService)

func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(s *waitlistService) {
		s.tracer = tracer
	}
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, notifier Notifier, runner TaskRunner, opts ...ServiceOption) WaitlistService {
	s := &waitlistService{
		logger:     logger,
		repository: repository,
		notifier:   notifier,
		runner:     runner,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// submission tracks one pass through the state machine.
type submission struct {
	span   trace.Span
	logger *log.Logger
	state  SubmissionState
}

func (sub *submission) enter(state SubmissionState) {
	sub.state = state
	sub.span.AddEvent(string(state))
	sub.logger.Debug("Submission state changed", "state", string(state))
}

func (sub *submission) abort(err error) error {
	failedIn := sub.state
	sub.enter(StateAborted)

	outcome := Outcome(err)
	sub.span.SetAttributes(
		attribute.String("waitlist.outcome", outcome),
		attribute.String("waitlist.failed_state", string(failedIn)),
	)
	if outcome == OutcomeUnavailable {
		sub.span.RecordError(err)
		sub.span.SetStatus(codes.Error, "submission aborted")
	}
	return err
}

func (s *waitlistService) Submit(ctx context.Context, req *SubmitRequest) (*SubmissionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "waitlist.Submit")
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)
	sub := &submission{span: span, logger: logger}

	sub.enter(StateValidating)
	if req == nil || strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		logger.Info("Rejected waitlist submission with missing fields")
		return nil, sub.abort(apperrors.NewInvalidRequestError(MessageRequired, nil))
	}

	entry := &models.WaitlistEntry{
		Name:     NormalizeName(req.Name),
		Email:    NormalizeEmail(req.Email),
		IsPublic: true,
	}

	sub.enter(StateCheckingDuplicate)
	exists, err := s.repository.ExistsByEmail(ctx, entry.Email)
	if err != nil {
		logger.Error("Duplicate check failed", "error", err)
		return nil, sub.abort(apperrors.NewUnavailableError(MessageUnavailable, err))
	}
	if exists {
		logger.Info("Rejected duplicate waitlist submission")
		return nil, sub.abort(apperrors.NewConflictError(MessageAlreadyAdded, nil))
	}

	sub.enter(StateWriting)
	created, err := s.repository.CreateEntry(ctx, entry)
	if err != nil {
		if apperrors.GetErrorType(err) == apperrors.ErrorTypeConflict {
			logger.Info("Waitlist insert lost a duplicate race", "error", err)
			return nil, sub.abort(apperrors.NewConflictError(MessageAlreadyAdded, err))
		}
		logger.Error("Failed to store waitlist entry", "error", err)
		return nil, sub.abort(apperrors.NewUnavailableError(MessageUnavailable, err))
	}

	sub.enter(StateNotifying)
	name, email := created.Name, created.Email
	s.runner.Go(ctx, "waitlist.confirmation_email", func(taskCtx context.Context) error {
		return s.notifier.Send(taskCtx, name, email)
	})

	sub.enter(StateResponding)
	response := ToSubmissionResponse(created)

	sub.enter(StateSucceeded)
	span.SetAttributes(attribute.String("waitlist.outcome", OutcomeAdded))
	logger.Info("Waitlist entry stored", "entry_id", created.ID)

	return &response, nil
}
