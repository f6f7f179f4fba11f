package handlers

import (
	"net/http"
	"strconv"

	"blitzboat/backend-go/internal/dashboard"
)

// Dashboard returns the full view for today's snapshot. Each call rebuilds
// the whole view from the loaded snapshot; there are no partial updates.
func (a *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.requireUnlocked(w, r); !ok {
		return
	}
	snap := a.loader.Load(r.Context(), a.now().Format("20060102"))
	writeJSON(w, http.StatusOK, dashboard.BuildDashboard(snap))
}

type raceDetailResponse struct {
	Selected bool                      `json:"selected"`
	Race     *dashboard.RaceDetailView `json:"race,omitempty"`
}

// Race resolves a card selection by index. A stale or out-of-range index is
// answered with selected=false rather than an error, mirroring the no-op
// contract of card clicks.
func (a *API) Race(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.requireUnlocked(w, r); !ok {
		return
	}
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		index = -1
	}
	snap := a.loader.Load(r.Context(), a.now().Format("20060102"))
	view, ok := dashboard.SelectRace(snap, index)
	if !ok {
		writeJSON(w, http.StatusOK, raceDetailResponse{Selected: false})
		return
	}
	writeJSON(w, http.StatusOK, raceDetailResponse{Selected: true, Race: &view})
}

// Ranking returns one venue's pattern ranking view.
func (a *API) Ranking(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.requireUnlocked(w, r); !ok {
		return
	}
	venue := r.URL.Query().Get("venue")
	snap := a.loader.Load(r.Context(), a.now().Format("20060102"))
	writeJSON(w, http.StatusOK, dashboard.BuildRanking(snap, venue))
}
