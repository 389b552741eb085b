// Package file loads record snapshots from a data directory of JSON exports.
// Leads may alternatively arrive as a CRM CSV export in an arbitrary
// charset.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/advisordesk/advisordesk/internal/asset"
	"github.com/advisordesk/advisordesk/internal/lead"
	"github.com/advisordesk/advisordesk/internal/market"
	"github.com/advisordesk/advisordesk/internal/source"
	"github.com/advisordesk/advisordesk/internal/transaction"
)

// Source reads snapshot collections from files under a single directory.
type Source struct {
	dir string
}

func New(dir string) *Source {
	return &Source{dir: dir}
}

func (s *Source) Transactions(ctx context.Context) ([]transaction.Transaction, error) {
	return readJSON[transaction.Transaction](s.path("transactions.json"))
}

func (s *Source) Assets(ctx context.Context) ([]asset.Asset, error) {
	return readJSON[asset.Asset](s.path("assets.json"))
}

// Leads prefers leads.json; when only a CSV export is present it is decoded
// to UTF-8 and parsed instead.
func (s *Source) Leads(ctx context.Context) ([]lead.Lead, error) {
	jsonPath := s.path("leads.json")
	if _, err := os.Stat(jsonPath); err == nil {
		return readJSON[lead.Lead](jsonPath)
	}

	csvPath := s.path("leads.csv")
	if _, err := os.Stat(csvPath); err != nil {
		return nil, fmt.Errorf("%w: missing %s and %s", source.ErrUnavailable, jsonPath, csvPath)
	}

	return readLeadsCSV(csvPath)
}

func (s *Source) Market(ctx context.Context) ([]market.Instrument, error) {
	return readJSON[market.Instrument](s.path("market.json"))
}

func (s *Source) path(name string) string {
	return filepath.Join(s.dir, name)
}

func readJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: missing %s", source.ErrUnavailable, path)
		}

		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return records, nil
}
