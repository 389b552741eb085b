// Package source defines the contract between the query engine and whatever
// supplies its record snapshots. A source returns a complete collection per
// call or fails; the engine never mutates or retains what it is given.
package source

import (
	"errors"

	"github.com/advisordesk/advisordesk/internal/asset"
	"github.com/advisordesk/advisordesk/internal/lead"
	"github.com/advisordesk/advisordesk/internal/market"
	"github.com/advisordesk/advisordesk/internal/transaction"
)

// ErrUnavailable reports that the underlying data source could not be
// reached or located. Callers surface it as SOURCE_UNAVAILABLE; retrying is
// the caller's concern, not the engine's.
var ErrUnavailable = errors.New("data source unavailable")

// Sources bundles the four snapshot collections behind one provider.
type Sources interface {
	transaction.Source
	asset.Source
	lead.Source
	market.Source
}
