package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"blitzboat/backend-go/internal/auth"
	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/services"
)

const sessionCookie = "bb_session"

type API struct {
	cfg    config.Config
	gate   *auth.Gate
	loader *services.SnapshotLoader
	now    func() time.Time
}

func New(cfg config.Config, cache services.Cache) *API {
	return &API{
		cfg:    cfg,
		gate:   auth.NewGate(cfg.AuthSecret),
		loader: services.NewSnapshotLoader(cfg, cache),
		now:    time.Now,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// sessionID returns the request's session, issuing a cookie when absent.
// The cookie has no expiry, so it dies with the browsing session; the
// unlock flag therefore never outlives the session it was granted in.
func (a *API) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := a.gate.NewSession()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// requireUnlocked gates the dashboard endpoints. The gate is presentation
// only: it hides views, not data.
func (a *API) requireUnlocked(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := a.sessionID(w, r)
	if !a.gate.IsUnlockedToday(id) {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"locked": true})
		return id, false
	}
	return id, true
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
