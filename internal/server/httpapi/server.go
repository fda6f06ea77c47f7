// Package httpapi exposes the documents service over HTTP+JSON: public
// register/login endpoints and bearer-token protected document CRUD.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/absingh09/mydocuments/internal/logging"
	"github.com/absingh09/mydocuments/internal/server/documents"
	"github.com/absingh09/mydocuments/internal/server/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// UserService is the slice of the users service the HTTP layer needs.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*users.AuthResult, error)
	Login(ctx context.Context, email, password string) (*users.AuthResult, error)
}

// DocumentService is the slice of the documents service the HTTP layer needs.
type DocumentService interface {
	Upload(ctx context.Context, ownerID string, doc *documents.Document) (*documents.Document, error)
	List(ctx context.Context, ownerID string) ([]*documents.Document, error)
	Get(ctx context.Context, ownerID, docID string) (*documents.Document, error)
	Update(ctx context.Context, ownerID, docID string, patch *documents.Patch) (*documents.Document, error)
	Delete(ctx context.Context, ownerID, docID string) error
}

type Server struct {
	echo      *echo.Echo
	address   string
	users     UserService
	documents DocumentService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us UserService, ds DocumentService, secretKey string, allowedOrigins []string) (*Server, error) {

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			l.Info(c.Request().Context(), "http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start).String(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return err
		}
	})

	s := &Server{
		echo:      e,
		address:   address,
		users:     us,
		documents: ds,
		logger:    l.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
	}

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleRoot)

	api := s.echo.Group("/api")
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	docs := api.Group("/documents", s.bearerAuth)
	docs.POST("", s.handleUpload)
	docs.GET("", s.handleList)
	docs.GET("/:id", s.handleGet)
	docs.PUT("/:id", s.handleUpdate)
	docs.DELETE("/:id", s.handleDelete)
}

func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
