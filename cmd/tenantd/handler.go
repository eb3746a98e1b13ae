package main

import (
	"net/http"

	"github.com/lattice-db/tenantpool/internal/dialect"
	"github.com/lattice-db/tenantpool/internal/query"
)

// listWidgetsHandler demonstrates the caller-side contract of C6: parse
// query parameters tolerantly, fetch a page against the tenant pool the
// middleware already resolved, and return the flat
// {records,total,page,page_size,total_pages} wire shape verbatim.
func listWidgetsHandler(w http.ResponseWriter, r *http.Request) {
	params := query.FromValues[Widget](r.URL.Query())
	pool := poolFromContext(r.Context())

	page, err := query.Fetch[Widget](r.Context(), pool, "SELECT * FROM widgets", params, dialect.Postgres)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}
