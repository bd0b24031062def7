package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insightdelivered/assembly-converter/internal/extractor"
	"github.com/insightdelivered/assembly-converter/internal/models"
	"github.com/insightdelivered/assembly-converter/internal/parser"
	"github.com/insightdelivered/assembly-converter/internal/writer"
)

const requestIDHeader = "X-Request-ID"

// ConvertResponse is the JSON response of the convert and assembly endpoints.
type ConvertResponse struct {
	Success        bool                        `json:"success"`
	Error          string                      `json:"error,omitempty"`
	RequestID      string                      `json:"requestId,omitempty"`
	Page           string                      `json:"page,omitempty"`
	Source         string                      `json:"source,omitempty"`
	Constituencies []models.ConstituencyRecord `json:"constituencies"`
	Districts      []string                    `json:"districts"`
	Parties        []string                    `json:"parties"`
	Count          int                         `json:"count"`
	Ungrouped      int                         `json:"ungrouped"`
	Unnumbered     int                         `json:"unnumbered"`
	CSV            string                      `json:"csv,omitempty"`
	Version        string                      `json:"version,omitempty"`
	DebugRows      []models.RowTrace           `json:"debugRows,omitempty"`
}

// convertRequest is the object form of a POST /api/convert body.
type convertRequest struct {
	Page string              `json:"page"`
	Rows []map[string]string `json:"rows"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	// Fetchers by source, used by GET /api/assembly/:page.
	Fetchers     map[models.Source]extractor.Fetcher
	DefaultTable int
	Version      string
	Logger       *zap.Logger
}

// NewApp creates a fiber app with the routes and middleware registered.
func (h *Handler) NewApp(bodyLimit int) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "assembly-converter",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(h.requestID)

	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
	app.Get("/api/assembly/:page", h.HandleAssembly)
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *Handler) requestID(c *fiber.Ctx) error {
	id := c.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals("requestId", id)
	c.Set(requestIDHeader, id)
	return c.Next()
}

func requestIDOf(c *fiber.Ctx) string {
	id, _ := c.Locals("requestId").(string)
	return id
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.Version,
	})
}

// HandleConvert reduces a raw table posted in the body. The body may be a
// bare array of row objects, a wikitable2json tables array, or
// {"page": ..., "rows": [...]}. ?csv=true adds the CSV rendering and
// ?debug=true the per-row classification trace.
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return h.writeError(c, fiber.StatusBadRequest, "Empty body. Post the table rows as JSON.")
	}

	var (
		keyed []map[string]string
		page  string
		err   error
	)
	if body[0] == '{' {
		var req convertRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return h.writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid JSON: %v", err))
		}
		keyed, page = req.Rows, req.Page
	} else {
		keyed, err = extractor.DecodeKeyed(body)
		if err != nil {
			return h.writeError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	rows, err := parser.DecodeRows(keyed)
	if err != nil {
		return h.writeError(c, fiber.StatusBadRequest, err.Error())
	}

	a := reducerFor(c).Reduce(rows)
	a.Page = page
	a.Source = models.SourceFile

	return h.writeAssembly(c, a)
}

// HandleAssembly fetches a page from upstream and reduces it.
// Query: table (default DefaultTable), source (api or wiki), csv, debug.
func (h *Handler) HandleAssembly(c *fiber.Ctx) error {
	page, err := url.PathUnescape(c.Params("page"))
	if err != nil {
		return h.writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid page name: %v", err))
	}

	table := h.DefaultTable
	if t := c.Query("table"); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil || n < 1 {
			return h.writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid table %q.", t))
		}
		table = n
	}

	source := models.Source(c.Query("source", string(models.SourceAPI)))
	f, ok := h.Fetchers[source]
	if !ok {
		return h.writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown source: %q. Use api or wiki.", source))
	}

	a, err := extractor.Assemble(c.UserContext(), f, page, table, reducerFor(c))
	if err != nil {
		h.logger().Warn("upstream fetch failed",
			zap.String("page", page),
			zap.Int("table", table),
			zap.String("requestId", requestIDOf(c)),
			zap.Error(err))
		switch {
		case errors.Is(err, parser.ErrMalformedRow):
			return h.writeError(c, fiber.StatusBadGateway, fmt.Sprintf("Upstream table is malformed: %v", err))
		case errors.Is(err, extractor.ErrNoTable):
			return h.writeError(c, fiber.StatusNotFound, err.Error())
		default:
			return h.writeError(c, fiber.StatusBadGateway, fmt.Sprintf("Fetch failed: %v", err))
		}
	}

	return h.writeAssembly(c, a)
}

func reducerFor(c *fiber.Ctx) *parser.Reducer {
	return &parser.Reducer{Trace: c.QueryBool("debug")}
}

func (h *Handler) writeAssembly(c *fiber.Ctx, a *models.Assembly) error {
	resp := ConvertResponse{
		Success:        true,
		RequestID:      requestIDOf(c),
		Page:           a.Page,
		Source:         string(a.Source),
		Constituencies: a.Records,
		Districts:      a.Districts,
		Parties:        a.Parties,
		Count:          len(a.Records),
		Ungrouped:      a.Ungrouped,
		Unnumbered:     a.Unnumbered,
		Version:        h.Version,
		DebugRows:      a.Trace,
	}

	if c.QueryBool("csv") {
		var buf bytes.Buffer
		w := &writer.CSVWriter{IncludeHeader: c.QueryBool("header", true)}
		if err := w.Write(&buf, a); err != nil {
			return h.writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
		}
		resp.CSV = buf.String()
	}

	if a.Ungrouped > 0 {
		h.logger().Warn("records before first district header",
			zap.String("page", a.Page),
			zap.Int("count", a.Ungrouped),
			zap.String("requestId", resp.RequestID))
	}

	return c.JSON(resp)
}

func (h *Handler) writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:   false,
		Error:     msg,
		RequestID: requestIDOf(c),
	})
}
