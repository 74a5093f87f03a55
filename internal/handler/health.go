package handler

import (
	"net/http"

	"github.com/CHIRANJEEVICHETAN/Tecosoft-Docs-sub001/internal/httputil"
)

// Health reports process liveness
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
