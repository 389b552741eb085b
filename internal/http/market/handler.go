package market

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/advisordesk/advisordesk/internal/http/respond"
	"github.com/advisordesk/advisordesk/internal/market"
)

type Handler struct {
	svc *market.Service
}

func NewHandler(svc *market.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
	r.Get("/breadth", h.breadth)
}

func paramsFromQuery(r *http.Request) market.Params {
	q := r.URL.Query()

	return market.Params{
		Symbols:  q.Get("symbols"),
		Sector:   q.Get("sector"),
		DateFrom: q.Get("startDate"),
		DateTo:   q.Get("endDate"),
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context(), paramsFromQuery(r))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, summary)
}

func (h *Handler) breadth(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.svc.Breadth(r.Context(), paramsFromQuery(r))
	if err != nil {
		respond.Err(w, err)
		return
	}

	respond.Data(w, metrics)
}
