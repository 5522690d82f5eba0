package handlers

import (
	"net/http"
)

const serviceName = "donation-api"

// Health serves GET /healthz for load balancer probes. It reports process
// liveness only; database reachability is verified at startup and by the
// pool's own health checks.
func (a *App) Health(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}
