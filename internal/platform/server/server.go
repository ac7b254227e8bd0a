package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/neuraread/banking-backend/internal/bank/api"
)

// Server wraps the HTTP engine and its middleware chain.
type Server struct {
	engine *gin.Engine
	logger *zap.Logger
	port   string
	server *http.Server
}

func NewServer(
	logger *zap.Logger,
	cfgPort string,
	cfgMode string,
	bankHandler *api.BankHandler,
) *Server {

	if cfgMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())

	// Request logging through zap.
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		logger.Info("HTTP Request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("cost", cost),
		)
	})

	// CORS for the admin SPA.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, X-User-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Caller identity. Real authentication lives upstream; here the admin
	// gateway forwards the acting user's id in a trusted header.
	r.Use(func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				c.Set(api.IdentityKey, id)
			}
		}
		c.Next()
	})

	v1 := r.Group("/api/v1")
	{
		bankHandler.RegisterRoutes(v1)

		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "UP"})
		})
	}

	return &Server{
		engine: r,
		logger: logger,
		port:   cfgPort,
	}
}

// Run starts serving and blocks until the listener stops.
func (s *Server) Run() error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.engine,
	}
	s.logger.Info("banking backend started", zap.String("port", s.port))
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
