package app

import (
	"net/http"
)

// GetHealth reports DOWN with a 503 when the database does not answer a
// ping, so the orchestrator stops routing traffic here.
func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := "UP"
	statusCode := http.StatusOK

	if err := app.db.Ping(r.Context()); err != nil {
		app.logError(r, err)

		status = "DOWN"
		statusCode = http.StatusServiceUnavailable
	}

	resp := HealthcheckResponse{
		Status: status,
		SystemInfo: SystemInfo{
			Version:     version,
			Environment: app.config.Env,
		},
	}

	app.writeJSON(w, statusCode, resp, nil)
}
