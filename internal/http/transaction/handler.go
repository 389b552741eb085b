package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/advisordesk/advisordesk/internal/http/respond"
	"github.com/advisordesk/advisordesk/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/flows", h.flows)
}

func paramsFromQuery(r *http.Request) transaction.Params {
	q := r.URL.Query()

	return transaction.Params{
		Kind:      q.Get("type"),
		Status:    q.Get("status"),
		DateFrom:  q.Get("startDate"),
		DateTo:    q.Get("endDate"),
		Page:      q.Get("page"),
		PageSize:  q.Get("pageSize"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Query(r.Context(), paramsFromQuery(r))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, page)
}

func (h *Handler) flows(w http.ResponseWriter, r *http.Request) {
	flows, err := h.svc.FlowSummary(r.Context(), paramsFromQuery(r))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, flows)
}
