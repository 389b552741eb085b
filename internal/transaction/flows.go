package transaction

import (
	"context"
	"fmt"
)

// FlowTotals summarizes completed cash movement across a collection.
type FlowTotals struct {
	Inflow       float64 `json:"inflow"`
	Outflow      float64 `json:"outflow"`
	InflowCount  int     `json:"inflowCount"`
	OutflowCount int     `json:"outflowCount"`
	NetFlow      float64 `json:"netFlow"`
}

// Flows totals inflow and outflow over txs. Only Completed transactions
// count; pending, failed and cancelled ones have not moved money yet.
// The result is order-independent, so it is identical before and after any
// sort of the collection.
func Flows(txs []Transaction) FlowTotals {
	var totals FlowTotals

	for _, t := range txs {
		if t.Status != StatusCompleted {
			continue
		}

		if t.Kind.Inflow() {
			totals.Inflow += t.Total
			totals.InflowCount++
		} else {
			totals.Outflow += t.Total
			totals.OutflowCount++
		}
	}

	totals.NetFlow = totals.Inflow - totals.Outflow

	return totals
}

// FlowSummary fetches the snapshot, applies the validated filter parameters
// and reduces the matches to flow totals.
func (s *Service) FlowSummary(ctx context.Context, p Params) (FlowTotals, error) {
	r, err := parseParams(p)
	if err != nil {
		return FlowTotals{}, err
	}

	snapshot, err := s.source.Transactions(ctx)
	if err != nil {
		return FlowTotals{}, fmt.Errorf("fetching transactions: %w", err)
	}

	matched := make([]Transaction, 0, len(snapshot))

	for _, t := range snapshot {
		if r.filter.Matches(t) {
			matched = append(matched, t)
		}
	}

	return Flows(matched), nil
}
