package http

import (
	"io"
	"log/slog"
	"net/http"
)

// notFoundBody is the exact body pacman sees for a missing package; keep it
// stable, mirrors treat it as part of the contract.
const notFoundBody = "Not found"

// WriteNotFound writes the plain-text 404 response used for absent objects
// and for store failures, which are deliberately served identically.
func WriteNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if _, err := io.WriteString(w, notFoundBody); err != nil {
		slog.Error("failed to write not-found response", "err", err)
	}
}
