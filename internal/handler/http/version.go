package http

import (
	"net/http"
)

// getServerVersion reports the running application version as plain text.
// The endpoint is unauthenticated so clients can probe the server before
// minting a token.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(serverVersion))
}
