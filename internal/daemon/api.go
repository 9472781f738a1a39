package daemon

import (
	"errors"
	"net/http"
	"strings"

	"techjobs/internal/api"
	"techjobs/internal/api/response"
	"techjobs/internal/store"
)

// AllColumns selects a search across every column.
const AllColumns = "all"

// RegisterHandlers registers the query endpoints.
func (d *Daemon) RegisterHandlers(registrar api.HandlerRegistrar) error {
	return api.RegisterRoutes(registrar,
		api.NewRoute(http.MethodGet, "/health", d.handleHealth),
		api.NewRoute(http.MethodGet, "/columns", d.handleColumns),
		api.NewRoute(http.MethodGet, "/columns/{column}/values", d.handleDistinctValues),
		api.NewRoute(http.MethodGet, "/jobs", d.handleListJobs),
		api.NewRoute(http.MethodGet, "/jobs/search", d.handleSearchJobs),
	)
}

// handleHealth reports whether the dataset is loaded.
func (d *Daemon) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := d.store.Status()
	payload := response.JSON{
		"status": "ready",
		"load":   status,
	}
	noStore := response.WithHeader("Cache-Control", "no-store")
	if !status.Loaded {
		payload["status"] = "not_ready"
		response.Respond(w, noStore, response.WithJSONStatus(payload, http.StatusServiceUnavailable))
		return
	}
	response.Respond(w, noStore, response.WithJSON(payload))
}

func (d *Daemon) handleColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := d.store.Columns(r.Context())
	if err != nil {
		d.respondError(w, r, err)
		return
	}
	response.Respond(w, response.WithJSON(response.JSON{"columns": columns}))
}

func (d *Daemon) handleDistinctValues(w http.ResponseWriter, r *http.Request) {
	column := r.PathValue("column")
	values, err := d.store.ListDistinctValues(r.Context(), column)
	if err != nil {
		d.respondError(w, r, err)
		return
	}
	response.Respond(w, response.WithJSON(response.JSON{
		"column": column,
		"values": values,
		"count":  len(values),
	}))
}

func (d *Daemon) handleListJobs(w http.ResponseWriter, r *http.Request) {
	data, err := d.store.ListAll(r.Context())
	if err != nil {
		d.respondError(w, r, err)
		return
	}
	response.Respond(w, response.WithJSON(response.JSON{
		"columns": data.Columns(),
		"jobs":    data,
		"count":   data.Len(),
	}))
}

// handleSearchJobs filters on ?column= (empty or "all" for every column) and ?q=.
func (d *Daemon) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	column := query.Get("column")
	needle := query.Get("q")

	var (
		jobs []store.Row
		err  error
	)
	if column == "" || strings.EqualFold(column, AllColumns) {
		jobs, err = d.store.FilterByAnyColumnContains(r.Context(), needle)
	} else {
		jobs, err = d.store.FilterByColumnContains(r.Context(), column, needle)
	}
	if err != nil {
		d.respondError(w, r, err)
		return
	}

	response.Respond(w, response.WithJSON(response.JSON{
		"jobs":  jobs,
		"count": len(jobs),
	}))
}

// respondError maps store errors onto HTTP statuses.
func (d *Daemon) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		keyErr  *store.KeyError
		loadErr *store.LoadError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &keyErr):
		status = http.StatusBadRequest
	case errors.As(err, &loadErr):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		d.logger.Error("Request failed", "path", r.URL.Path, "error", err)
	}
	response.Respond(w, response.WithJSONError(err, status))
}
