package waitlist

import (
	"errors"
	"io"

	"github.com/akeren/waitlist-api/config/router"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
)

// NewWaitlistController serves POST /v1/waitlist.
func NewWaitlistController(service WaitlistService, metrics *SubmissionMetrics) *router.RESTController {
	return router.NewVersionedRESTController(
		"WaitlistController",
		"v1",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, "", submitHandler(service, metrics))
		},
	)
}

// NewSubmitController serves POST /api/submit, the path the landing page posts to.
func NewSubmitController(service WaitlistService, metrics *SubmissionMetrics) *router.RESTController {
	return router.NewRESTController(
		"SubmitController",
		"/api",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, "submit", submitHandler(service, metrics))
		},
	)
}

func submitHandler(service WaitlistService, metrics *SubmissionMetrics) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SubmitRequest

		// An empty body is a submission with no fields, not a malformed one.
		if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			logger.Warn("Failed to bind waitlist submission", "error", err)
			metrics.Observe(OutcomeInvalid)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		response, err := service.Submit(ctx.Request.Context(), &req)
		metrics.Observe(Outcome(err))
		if err != nil {
			return router.ResultFromError(err)
		}

		return router.OKResult(response, MessageAdded)
	}
}
