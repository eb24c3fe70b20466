package router

import (
	"fmt"
	"net/http"
	"strings"
)

func normalizePath(controller *RESTController, relativePath string) string {
	path := controller.mountPoint

	if relativePath != "" {
		path = path + "/" + relativePath
	}

	if path[0] != '/' {
		path = "/" + path
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	return strings.ReplaceAll(path, "//", "/")
}

func routeKey(method, path string) string {
	return method + " " + path
}

// claimRoute panics when two controllers register the same method and path.
func (routerService *RouterService) claimRoute(controller *RESTController, method, path string) {
	key := routeKey(method, path)

	if owner, taken := routerService.routes[key]; taken {
		panic(fmt.Sprintf("a handler is already registered for %s by controller '%s'", key, owner.name))
	}

	routerService.routes[key] = controller
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("A handler returned an undefined result. This typically indicates a bug in a handler's implementation."))
			return
		}

		c.JSON(result.StatusCode, result)
	}
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: strings.ReplaceAll("/"+mountPoint, "//", "/"),
		prepare:    prepare,
	}
}

// NewVersionedRESTController prefixes the version to the mount point, so
// "v1" + "waitlist" serves under /v1/waitlist.
func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: strings.ReplaceAll("/"+version+"/"+mountPoint, "//", "/"),
		version:    version,
		prepare:    prepare,
	}
}

func (routerService *RouterService) addHandler(
	method string,
	controller *RESTController,
	path string,
	handler HandlerFunction,
	middlewares []MiddlewareFunc,
) {
	controller.handlerCount++
	fullPath := normalizePath(controller, path)
	routerService.claimRoute(controller, method, fullPath)
	routerService.engine.Handle(method, fullPath, append(middlewares, createHandler(handler))...)
	routerService.logger.Debug("Handler registered", "method", method, "path", fullPath)
}

func (routerService *RouterService) AddPostHandler(controller *RESTController, path string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(http.MethodPost, controller, path, handler, middlewares)
}

func (routerService *RouterService) AddGetHandler(controller *RESTController, path string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(http.MethodGet, controller, path, handler, middlewares)
}
