package asset

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/advisordesk/advisordesk/internal/asset"
	"github.com/advisordesk/advisordesk/internal/http/respond"
	"github.com/advisordesk/advisordesk/internal/query"
)

const defaultTopPerformers = 5

type Handler struct {
	svc *asset.Service
}

func NewHandler(svc *asset.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/top-performers", h.topPerformers)
	r.Get("/day-change", h.dayChange)
}

func paramsFromQuery(r *http.Request) asset.Params {
	q := r.URL.Query()

	return asset.Params{
		Category:  q.Get("category"),
		Page:      q.Get("page"),
		PageSize:  q.Get("pageSize"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
}

// list serves the holdings listing. summary=true switches to the portfolio
// rollup over the same filter.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p := paramsFromQuery(r)

	wantSummary, err := query.ParseBool("summary", r.URL.Query().Get("summary"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	if wantSummary {
		summary, err := h.svc.Summary(r.Context(), p)
		if err != nil {
			respond.Err(w, err)
			return
		}

		respond.Data(w, summary)

		return
	}

	page, err := h.svc.Query(r.Context(), p)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, page)
}

func (h *Handler) dayChange(w http.ResponseWriter, r *http.Request) {
	totals, err := h.svc.DayChange(r.Context(), paramsFromQuery(r))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, totals)
}

func (h *Handler) topPerformers(w http.ResponseWriter, r *http.Request) {
	limit, err := query.ParseLimit(r.URL.Query().Get("limit"), defaultTopPerformers)
	if err != nil {
		respond.Err(w, err)
		return
	}

	top, err := h.svc.TopPerformers(r.Context(), paramsFromQuery(r), limit)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, top)
}
