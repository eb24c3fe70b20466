package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is the JSON envelope every handler answers with:
// {"code": <status>, "data": <payload or null>, "message": <text>}.
type ServiceResult struct {
	StatusCode int    `json:"code"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

// HandlerFunction returns the envelope; the router writes it with StatusCode
// as the HTTP status. A nil result becomes a 500.
type HandlerFunction func(*RequestContext) *ServiceResult

// RESTController groups routes under a mount point, optionally versioned
// (/v1/waitlist). prepare registers the routes when the controller is mounted.
type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}
