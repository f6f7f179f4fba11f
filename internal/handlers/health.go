package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"blitzboat/backend-go/internal/models"
)

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := []string{}
	missing := []string{}
	depsStatus := map[string]models.DepStatus{}
	if err := a.loader.Ping(ctx); err != nil {
		// Not fatal: the loader degrades to latest.json or demo data.
		missing = append(missing, "snapshot_upstream_unreachable")
		depsStatus["snapshot_upstream"] = models.DepStatus{Ok: false, Error: err.Error()}
	} else {
		deps = append(deps, "snapshot_upstream")
		depsStatus["snapshot_upstream"] = models.DepStatus{Ok: true}
	}

	writeJSON(w, http.StatusOK, models.HealthResponse{
		Ok:          true,
		TsISO:       nowISO(),
		Service:     "backend-go",
		Version:     os.Getenv("SERVICE_VERSION"),
		Deps:        deps,
		DepsStatus:  depsStatus,
		DataMissing: missing,
	})
}
