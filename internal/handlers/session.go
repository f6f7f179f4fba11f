package handlers

import (
	"encoding/json"
	"net/http"

	"blitzboat/backend-go/internal/metrics"
)

type sessionStatus struct {
	Unlocked     bool   `json:"unlocked"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type unlockRequest struct {
	Password string `json:"password"`
}

type unlockResponse struct {
	Ok           bool   `json:"ok"`
	Unlocked     bool   `json:"unlocked"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Session reports the gate state for the caller's session.
func (a *API) Session(w http.ResponseWriter, r *http.Request) {
	id := a.sessionID(w, r)
	writeJSON(w, http.StatusOK, sessionStatus{
		Unlocked:     a.gate.IsUnlockedToday(id),
		ErrorMessage: a.gate.ErrorMessage(id),
	})
}

// Unlock handles a password submission. A mismatch is not an HTTP error:
// the response carries the transient message the UI shows and clears.
func (a *API) Unlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method_not_allowed"})
		return
	}
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	id := a.sessionID(w, r)
	ok := a.gate.AttemptUnlock(id, req.Password)
	if ok {
		metrics.UnlockAttempts.WithLabelValues("success").Inc()
	} else {
		metrics.UnlockAttempts.WithLabelValues("failure").Inc()
	}
	writeJSON(w, http.StatusOK, unlockResponse{
		Ok:           ok,
		Unlocked:     a.gate.IsUnlockedToday(id),
		ErrorMessage: a.gate.ErrorMessage(id),
	})
}
