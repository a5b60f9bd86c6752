package http

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/mostafa-azimi/touring-app-sub000/internal/shiphero"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/logging"
	"github.com/mostafa-azimi/touring-app-sub000/pkg/middleware"
)

// maxProxyBody caps pass-through request bodies at 1 MiB
const maxProxyBody = 1 << 20

// ProxyHandlers forwards raw GraphQL requests to the warehouse API with the
// service's token attached, for ad hoc queries the typed client does not
// model.
type ProxyHandlers struct {
	client  *shiphero.Client
	logger  *logging.Logger
	respond func(c *gin.Context, err error)
}

// NewProxyHandlers creates proxy HTTP handlers
func NewProxyHandlers(client *shiphero.Client, logger *logging.Logger) *ProxyHandlers {
	return &ProxyHandlers{
		client:  client,
		logger:  logger,
		respond: middleware.ErrorResponder(logger.Logger),
	}
}

// Forward handles POST /api/v1/proxy/graphql
func (h *ProxyHandlers) Forward() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxProxyBody))
		if err != nil {
			middleware.AbortWithValidation(c, "failed to read request body")
			return
		}
		if len(body) == 0 {
			middleware.AbortWithValidation(c, "request body is required")
			return
		}

		response, status, err := h.client.Proxy(c.Request.Context(), body)
		if err != nil {
			h.respond(c, err)
			return
		}
		c.Data(status, "application/json", response)
	}
}
