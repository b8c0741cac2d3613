// Package web exposes the gateway over HTTP: POST /users for registration
// and POST /payments for signed payment requests.
package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/piprs/piprs/gateway"
)

// Server is the piprs HTTP server.
type Server struct {
	svc    *gateway.Service
	log    zerolog.Logger
	router *gin.Engine
}

// NewServer builds the router around a gateway service.
func NewServer(svc *gateway.Service, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{svc: svc, log: log, router: router}

	router.Use(gin.Recovery(), s.requestLog())

	router.POST("/users", s.handleRegister)
	router.POST("/payments", s.handlePayment)

	return s
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLog tags every request with a uuid and logs its outcome.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Header("X-Request-Id", id)

		start := time.Now()
		c.Next()

		s.log.Info().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
