package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/advisordesk/advisordesk/internal/asset"
	"github.com/advisordesk/advisordesk/internal/lead"
	"github.com/advisordesk/advisordesk/internal/market"
	"github.com/advisordesk/advisordesk/internal/source"
	"github.com/advisordesk/advisordesk/internal/transaction"
)

func (s *Store) Transactions(ctx context.Context) ([]transaction.Transaction, error) {
	query := `
		SELECT id, type, symbol, company, quantity, price, total, date, status, fees
		FROM transactions
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapQueryErr("transactions", err)
	}
	defer rows.Close()

	var txs []transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

func scanTransaction(sc scanner) (transaction.Transaction, error) {
	var tx transaction.Transaction

	var kind, status string

	var symbol, company sql.NullString

	var price sql.NullFloat64

	if err := sc.Scan(
		&tx.ID, &kind, &symbol, &company, &tx.Quantity, &price,
		&tx.Total, &tx.Date, &status, &tx.Fees,
	); err != nil {
		return transaction.Transaction{}, err
	}

	tx.Kind = transaction.Kind(kind)
	tx.Status = transaction.Status(status)
	tx.Symbol = symbol.String
	tx.Company = company.String

	if price.Valid {
		tx.Price = &price.Float64
	}

	return tx, nil
}

func (s *Store) Assets(ctx context.Context) ([]asset.Asset, error) {
	query := `
		SELECT id, symbol, name, category, quantity, current_price, total_value,
			cost_basis, unrealized_gain, unrealized_gain_percent, allocation,
			perf_day, perf_week, perf_month, perf_year
		FROM assets
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapQueryErr("assets", err)
	}
	defer rows.Close()

	var assets []asset.Asset

	for rows.Next() {
		var a asset.Asset

		var category string

		if err := rows.Scan(
			&a.ID, &a.Symbol, &a.Name, &category, &a.Quantity, &a.CurrentPrice,
			&a.TotalValue, &a.CostBasis, &a.UnrealizedGain, &a.UnrealizedGainPercent,
			&a.Allocation, &a.Performance.Day, &a.Performance.Week,
			&a.Performance.Month, &a.Performance.Year,
		); err != nil {
			return nil, fmt.Errorf("scanning asset: %w", err)
		}

		a.Category = asset.Category(category)
		assets = append(assets, a)
	}

	return assets, rows.Err()
}

func (s *Store) Leads(ctx context.Context) ([]lead.Lead, error) {
	query := `
		SELECT id, company, contact_name, contact_email, contact_phone, source,
			status, potential_value, assigned_to, created_date,
			last_contacted_date, scheme, interaction_history
		FROM leads
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapQueryErr("leads", err)
	}
	defer rows.Close()

	var leads []lead.Lead

	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead: %w", err)
		}

		leads = append(leads, l)
	}

	return leads, rows.Err()
}

func scanLead(sc scanner) (lead.Lead, error) {
	var l lead.Lead

	var channel, status string

	var phone, assignedTo, scheme sql.NullString

	var history []byte

	if err := sc.Scan(
		&l.ID, &l.Company, &l.ContactName, &l.ContactEmail, &phone, &channel,
		&status, &l.PotentialValue, &assignedTo, &l.CreatedDate,
		&l.LastContactedDate, &scheme, &history,
	); err != nil {
		return lead.Lead{}, err
	}

	l.Source = lead.Channel(channel)
	l.Status = lead.Status(status)
	l.ContactPhone = phone.String
	l.AssignedTo = assignedTo.String
	l.Scheme = scheme.String

	if len(history) > 0 {
		if err := json.Unmarshal(history, &l.InteractionHistory); err != nil {
			return lead.Lead{}, fmt.Errorf("interaction history: %w", err)
		}
	}

	return l, nil
}

func (s *Store) Market(ctx context.Context) ([]market.Instrument, error) {
	query := `
		SELECT symbol, name, value, change, change_percent, timestamp,
			high_52_week, low_52_week, market_cap, volume, sector, historical_data
		FROM market_instruments
		ORDER BY symbol
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapQueryErr("market_instruments", err)
	}
	defer rows.Close()

	var instruments []market.Instrument

	for rows.Next() {
		var inst market.Instrument

		var sector sql.NullString

		var series []byte

		if err := rows.Scan(
			&inst.Symbol, &inst.Name, &inst.Value, &inst.Change, &inst.ChangePercent,
			&inst.Timestamp, &inst.High52Week, &inst.Low52Week, &inst.MarketCap,
			&inst.Volume, &sector, &series,
		); err != nil {
			return nil, fmt.Errorf("scanning instrument: %w", err)
		}

		inst.Sector = sector.String

		if len(series) > 0 {
			if err := json.Unmarshal(series, &inst.HistoricalData); err != nil {
				return nil, fmt.Errorf("historical data for %s: %w", inst.Symbol, err)
			}
		}

		instruments = append(instruments, inst)
	}

	return instruments, rows.Err()
}

// wrapQueryErr tags connectivity failures as an unavailable source so the
// boundary can distinguish them from engine errors.
func wrapQueryErr(table string, err error) error {
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: querying %s: %v", source.ErrUnavailable, table, err)
	}

	return fmt.Errorf("querying %s: %w", table, err)
}
