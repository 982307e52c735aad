package api

import (
	"context"
	"net/http"
	"time"

	"github.com/amterp/squares/internal/logging"
	"github.com/amterp/squares/internal/model"
	"github.com/charmbracelet/log"
)

// SquareService is the placement API the handlers drive.
type SquareService interface {
	Create(ctx context.Context) (*model.Square, error)
	List(ctx context.Context) ([]*model.Square, error)
	Clear(ctx context.Context) error
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	squares      SquareService
	exposeErrors bool
	logger       *log.Logger
	now          func() time.Time
}

// NewHandler creates a handler. With exposeErrors set, internal failure
// messages are returned to clients (development only).
func NewHandler(squares SquareService, exposeErrors bool, logger *log.Logger) *Handler {
	return &Handler{
		squares:      squares,
		exposeErrors: exposeErrors,
		logger:       logger,
		now:          time.Now,
	}
}

// RegisterRoutes sets up the API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/squares", h.ListSquares)
	mux.HandleFunc("GET /api/squares/{$}", h.ListSquares)
	mux.HandleFunc("POST /api/squares", h.CreateSquare)
	mux.HandleFunc("POST /api/squares/{$}", h.CreateSquare)
	mux.HandleFunc("DELETE /api/squares", h.ClearSquares)
	mux.HandleFunc("DELETE /api/squares/{$}", h.ClearSquares)
	mux.HandleFunc("GET /api/squares/grid.svg", h.GridSVG)
	mux.HandleFunc("GET /health", h.Health)
}

// SquareResponse is the wire form of a square.
type SquareResponse struct {
	ID        string    `json:"id"`
	Row       int       `json:"row"`
	Column    int       `json:"column"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

func toSquareResponse(sq *model.Square) SquareResponse {
	return SquareResponse{
		ID:        sq.ID,
		Row:       sq.Row,
		Column:    sq.Column,
		Color:     sq.Color,
		CreatedAt: sq.CreatedAt,
	}
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ListSquares returns every stored square in insertion order.
func (h *Handler) ListSquares(w http.ResponseWriter, r *http.Request) {
	squares, err := h.squares.List(r.Context())
	if err != nil {
		h.error(w, r, err)
		return
	}

	resp := make([]SquareResponse, 0, len(squares))
	for _, sq := range squares {
		resp = append(resp, toSquareResponse(sq))
	}
	JSON(w, http.StatusOK, resp)
}

// CreateSquare places the next square. The request body is ignored.
func (h *Handler) CreateSquare(w http.ResponseWriter, r *http.Request) {
	sq, err := h.squares.Create(r.Context())
	if err != nil {
		h.error(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/squares/"+sq.ID)
	JSON(w, http.StatusCreated, toSquareResponse(sq))
}

// ClearSquares removes every square.
func (h *Handler) ClearSquares(w http.ResponseWriter, r *http.Request) {
	if err := h.squares.Clear(r.Context()); err != nil {
		h.error(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GridSVG renders the current grid as an SVG image.
func (h *Handler) GridSVG(w http.ResponseWriter, r *http.Request) {
	squares, err := h.squares.List(r.Context())
	if err != nil {
		h.error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(RenderGridSVG(squares)))
}

// Health reports liveness. It does not touch the store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, HealthResponse{Status: "healthy", Timestamp: h.now().UTC()})
}

func (h *Handler) error(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context(), h.logger).Error("Request failed",
		"method", r.Method, "path", r.URL.Path, "err", err)
	Error(w, r, err, h.exposeErrors)
}
