package server

import (
	"context"
	"net/http"

	"time2gather/core/config"
	"time2gather/core/constants"
	"time2gather/core/controller"
	"time2gather/core/errors"
	"time2gather/core/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New builds the echo instance with the shared middleware stack and a /health endpoint. Modules register
// their own routes on it.
func New(cfg config.AppConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "Accept-Language"},
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"requestId", v.RequestID,
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return e
}

// errorHandler renders errors that escaped the handlers (unknown routes, bind failures, panics) in the
// same envelope the controllers use.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.AsTarget(err, &he) {
		logger.Error("Server:errorHandler", err)
		_ = c.JSON(http.StatusInternalServerError,
			controller.NewErrorBody(http.StatusInternalServerError, errors.ErrInternalServer, "internal server error"))
		return
	}

	if body, ok := he.Message.(*controller.ErrorResponse); ok {
		_ = c.JSON(he.Code, body)
		return
	}

	code := errors.ErrInternalServer
	switch he.Code {
	case http.StatusNotFound:
		code = errors.ErrNotFound
	case http.StatusMethodNotAllowed, http.StatusBadRequest:
		code = errors.ErrInvalidRequestData
	case http.StatusUnauthorized:
		code = errors.ErrUnauthorized
	}
	msg, _ := he.Message.(string)
	if msg == "" {
		msg = http.StatusText(he.Code)
	}
	_ = c.JSON(he.Code, controller.NewErrorBody(he.Code, code, msg))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server:Run:Shutdown", err)
		return err
	}
	logger.Info("http server stopped")
	return nil
}
