package server

import (
	"bytes"
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rpgo/contribution-calculator/internal/calculation"
	"github.com/rpgo/contribution-calculator/internal/config"
	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/rpgo/contribution-calculator/internal/output"
)

const requestIDHeader = "X-Request-ID"

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// CompareResponse wraps a comparison report with the id of the calculation.
type CompareResponse struct {
	CalculationID string                   `json:"calculation_id"`
	Report        *domain.ComparisonReport `json:"report"`
}

// Handler serves comparison requests over HTTP. It is stateless apart from its
// logger and parser and may be shared across connections.
type Handler struct {
	parser *config.InputParser
	logger *zap.Logger
}

// NewHandler creates a handler; a nil logger discards request logs.
func NewHandler(logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{parser: config.NewInputParser(), logger: logger}
}

// Handle routes a request. It matches fasthttp.RequestHandler.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	requestID := string(ctx.Request.Header.Peek(requestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx.Response.Header.Set(requestIDHeader, requestID)

	switch string(ctx.Path()) {
	case "/healthz":
		if !ctx.IsGet() && !ctx.IsHead() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed", requestID)
			break
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case "/v1/tax-years":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed", requestID)
			break
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string][]int{"tax_years": domain.AvailableTaxYears()})
	case "/v1/compare":
		if !ctx.IsPost() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed", requestID)
			break
		}
		h.handleCompare(ctx, requestID)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "not found", requestID)
	}

	h.logger.Info("request",
		zap.String("request_id", requestID),
		zap.ByteString("method", ctx.Method()),
		zap.ByteString("path", ctx.Path()),
		zap.Int("status", ctx.Response.StatusCode()),
		zap.Duration("duration", time.Since(start)),
	)
}

// handleCompare decodes a JSON configuration, runs every scenario and replies with
// the report. A "format" query argument selects any registered report format.
func (h *Handler) handleCompare(ctx *fasthttp.RequestCtx, requestID string) {
	cfg := domain.NewConfiguration()
	if err := json.Unmarshal(ctx.PostBody(), &cfg); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error(), requestID)
		return
	}
	if err := h.parser.Prepare(&cfg); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error(), requestID)
		return
	}

	engine, err := calculation.NewCalculationEngineForConfig(&cfg)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error(), requestID)
		return
	}
	engine.SetLogger(h.logger.Sugar().With("request_id", requestID))

	report, err := engine.RunScenarios(ctx, &cfg)
	if err != nil {
		h.logger.Warn("comparison failed", zap.String("request_id", requestID), zap.Error(err))
		writeError(ctx, fasthttp.StatusUnprocessableEntity, err.Error(), requestID)
		return
	}

	format := string(ctx.QueryArgs().Peek("format"))
	if format == "" || output.NormalizeFormatName(format) == "json" {
		writeJSON(ctx, fasthttp.StatusOK, CompareResponse{CalculationID: uuid.NewString(), Report: report})
		return
	}

	var buf bytes.Buffer
	if err := output.WriteReport(&buf, report, format); err != nil {
		status := fasthttp.StatusInternalServerError
		if errors.Is(err, output.ErrUnsupportedFormat) {
			status = fasthttp.StatusBadRequest
		}
		writeError(ctx, status, err.Error(), requestID)
		return
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType(contentTypeFor(format))
	ctx.SetBody(buf.Bytes())
}

func contentTypeFor(format string) string {
	switch output.ExtensionFor(format) {
	case "html":
		return "text/html; charset=utf-8"
	case "csv":
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message, requestID string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message, RequestID: requestID})
}
