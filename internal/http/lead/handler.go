package lead

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/advisordesk/advisordesk/internal/http/respond"
	"github.com/advisordesk/advisordesk/internal/lead"
	"github.com/advisordesk/advisordesk/internal/query"
)

const defaultTopProspects = 5

type Handler struct {
	svc *lead.Service
}

func NewHandler(svc *lead.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/channels", h.channels)
	r.Get("/trend", h.trend)
	r.Get("/top-prospects", h.topProspects)
}

func paramsFromQuery(r *http.Request) lead.Params {
	q := r.URL.Query()

	return lead.Params{
		Status:     q.Get("status"),
		Source:     q.Get("source"),
		AssignedTo: q.Get("assignedTo"),
		DateFrom:   q.Get("startDate"),
		DateTo:     q.Get("endDate"),
		Scheme:     q.Get("scheme"),
		Search:     q.Get("search"),
		Page:       q.Get("page"),
		PageSize:   q.Get("pageSize"),
		SortBy:     q.Get("sortBy"),
		SortOrder:  q.Get("sortOrder"),
	}
}

// list serves the pipeline listing. analytics=true switches to the funnel
// rollup over the same filter.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	p := paramsFromQuery(r)

	wantAnalytics, err := query.ParseBool("analytics", r.URL.Query().Get("analytics"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	if wantAnalytics {
		analytics, err := h.svc.Analytics(r.Context(), p)
		if err != nil {
			respond.Err(w, err)
			return
		}

		respond.Data(w, analytics)

		return
	}

	page, err := h.svc.Query(r.Context(), p)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, page)
}

func (h *Handler) channels(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.ChannelBreakdown(r.Context(), paramsFromQuery(r))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, stats)
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.Trend(r.Context(), paramsFromQuery(r), r.URL.Query().Get("period"))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, points)
}

func (h *Handler) topProspects(w http.ResponseWriter, r *http.Request) {
	limit, err := query.ParseLimit(r.URL.Query().Get("limit"), defaultTopProspects)
	if err != nil {
		respond.Err(w, err)
		return
	}

	prospects, err := h.svc.TopProspects(r.Context(), paramsFromQuery(r), limit)
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, prospects)
}
