package mcphttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/i2y/graphqlmcp/internal/domain"
	"github.com/i2y/graphqlmcp/internal/usecase"
)

// Handlers struct holds dependencies for the HTTP handlers.
type Handlers struct {
	listSchemasUseCase *usecase.ListSchemasUseCase
	warmSchemaUseCase  *usecase.WarmSchemaUseCase
	logger             *slog.Logger
}

// NewHandlers creates a new Handlers struct.
func NewHandlers(
	listUC *usecase.ListSchemasUseCase,
	warmUC *usecase.WarmSchemaUseCase,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		listSchemasUseCase: listUC,
		warmSchemaUseCase:  warmUC,
		logger:             logger.With("component", "mcphttp_handler"),
	}
}

// RegisterAdminRoutes sets up the HTTP routes for admin endpoints.
func (h *Handlers) RegisterAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/schemas", h.handleListSchemas)
	mux.HandleFunc("POST /admin/cache", h.handleWarmCache)
}

// WarmRequest defines the expected JSON body for the /admin/cache endpoint.
type WarmRequest struct {
	API     string `json:"api"`
	Version string `json:"version"`
}

// WarmResponse is returned once a schema has been cached.
type WarmResponse struct {
	Schema domain.SchemaDescriptor `json:"schema"`
}

// handleListSchemas implements GET /admin/schemas
func (h *Handlers) handleListSchemas(w http.ResponseWriter, r *http.Request) {
	catalog, _ := h.listSchemasUseCase.Execute(r.Context())
	writeJSON(w, http.StatusOK, catalog)
}

// handleWarmCache implements POST /admin/cache
func (h *Handlers) handleWarmCache(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req WarmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode warm request body", slog.Any("error", err))
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.API == "" {
		h.logger.Warn("Warm request missing api field")
		http.Error(w, "Missing 'api' field in request body", http.StatusBadRequest)
		return
	}

	h.logger.Info("Received warm request", slog.String("api", req.API), slog.String("version", req.Version))
	descriptor, err := h.warmSchemaUseCase.Execute(r.Context(), req.API, req.Version)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrSchemaNotFound) {
			status = http.StatusNotFound
		}
		h.logger.Error("Failed to warm schema", slog.String("api", req.API), slog.Any("error", err))
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, WarmResponse{Schema: descriptor})
	h.logger.Info("Schema cached", slog.String("schema_id", descriptor.ID))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
