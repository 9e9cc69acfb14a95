package server

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const maxRequestBodySize = 1 << 20

// NewServer builds a fasthttp server around h with conservative limits.
func NewServer(h *Handler) *fasthttp.Server {
	return &fasthttp.Server{
		Handler:            h.Handle,
		Name:               "contribcalc",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       30 * time.Second,
		MaxRequestBodySize: maxRequestBodySize,
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h *Handler) error {
	srv := NewServer(h)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(addr)
	}()
	h.logger.Info("listening", zap.String("addr", addr))

	select {
	case <-ctx.Done():
		h.logger.Info("shutting down")
		return srv.Shutdown()
	case err := <-errCh:
		return err
	}
}
