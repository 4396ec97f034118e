// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// SchemaHandler handles schema inspection requests.
type SchemaHandler struct {
	deps Dependencies
}

// NewSchemaHandler creates a new schema handler.
func NewSchemaHandler(deps Dependencies) *SchemaHandler {
	return &SchemaHandler{deps: deps}
}

type schemaResponse struct {
	Hash     string   `json:"hash"`
	Features []string `json:"features"`
}

// HandleGetSchema handles GET /schema requests.
func (h *SchemaHandler) HandleGetSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, schemaResponse{
		Hash:     h.deps.SchemaHash(),
		Features: h.deps.SchemaFeatures(),
	})
}
