package dropbox

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rephotos/admin-api/internal/pkg/response"
)

// Handler exposes the OAuth connect flow for the Dropbox integration
type Handler struct {
	client      *Client
	frontendURL string
}

// NewHandler creates a Dropbox OAuth handler
func NewHandler(client *Client, frontendURL string) *Handler {
	return &Handler{client: client, frontendURL: frontendURL}
}

// Routes returns the Dropbox OAuth routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/auth", h.Auth)
	r.Get("/callback", h.Callback)
	r.Post("/refresh-token", h.Refresh)
	return r
}

// Auth handles GET /dropbox/auth
func (h *Handler) Auth(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"auth_url": h.client.AuthorizeURL()})
}

// Callback handles GET /dropbox/callback
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "No authorization code provided")
		return
	}

	if err := h.client.ExchangeCode(r.Context(), code); err != nil {
		log.Error().Err(err).Msg("Dropbox code exchange failed")
		response.InternalError(w)
		return
	}

	if h.frontendURL != "" {
		http.Redirect(w, r, h.frontendURL+"/auth/success", http.StatusFound)
		return
	}
	response.OK(w, map[string]string{"message": "Dropbox connected"})
}

// Refresh handles POST /dropbox/refresh-token
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if _, err := h.client.RefreshAccessToken(r.Context()); err != nil {
		log.Error().Err(err).Msg("Dropbox token refresh failed")
		if err == ErrNoToken {
			response.BadRequest(w, "Dropbox is not connected")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]string{"message": "Token refreshed successfully"})
}
