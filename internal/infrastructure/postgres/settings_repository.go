package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo persiste la configuración en workspace_settings. Tasas, publicidad,
// gastos, CPA de referencia y supuestos se guardan como JSONB.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve (nil, nil) si el espacio no tiene configuración guardada.
func (r *SettingsRepo) Get(ctx context.Context, workspaceID string) (*entity.Settings, error) {
	query := `
		SELECT workspace_id, default_country, include_iva, exchange_rates, ad_spend, expenses,
		       cpa_reference, rate_assumptions, updated_at
		FROM workspace_settings WHERE workspace_id = $1`
	var (
		s                                             entity.Settings
		rates, adSpend, expenses, cpaRef, assumptions []byte
	)
	err := r.q.QueryRow(ctx, query, workspaceID).Scan(
		&s.WorkspaceID, &s.DefaultCountry, &s.IncludeIVA, &rates, &adSpend, &expenses,
		&cpaRef, &assumptions, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	s.ExchangeRates = currency.RateTable{}
	parts := []struct {
		raw []byte
		dst any
	}{
		{rates, &s.ExchangeRates},
		{adSpend, &s.AdSpend},
		{expenses, &s.Expenses},
		{cpaRef, &s.CPAReference},
		{assumptions, &s.RateAssumptions},
	}
	for _, p := range parts {
		if len(p.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(p.raw, p.dst); err != nil {
			return nil, fmt.Errorf("decode settings: %w", err)
		}
	}
	return &s, nil
}

// Save inserta o reemplaza la configuración completa.
func (r *SettingsRepo) Save(ctx context.Context, s *entity.Settings) error {
	rates, err := json.Marshal(s.ExchangeRates)
	if err != nil {
		return fmt.Errorf("encode rates: %w", err)
	}
	adSpend, err := json.Marshal(s.AdSpend)
	if err != nil {
		return fmt.Errorf("encode ad spend: %w", err)
	}
	expenses, err := json.Marshal(s.Expenses)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	cpaRef, err := json.Marshal(s.CPAReference)
	if err != nil {
		return fmt.Errorf("encode cpa reference: %w", err)
	}
	assumptions, err := json.Marshal(s.RateAssumptions)
	if err != nil {
		return fmt.Errorf("encode rate assumptions: %w", err)
	}

	query := `
		INSERT INTO workspace_settings (workspace_id, default_country, include_iva, exchange_rates, ad_spend,
		                                expenses, cpa_reference, rate_assumptions, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (workspace_id) DO UPDATE SET
			default_country  = EXCLUDED.default_country,
			include_iva      = EXCLUDED.include_iva,
			exchange_rates   = EXCLUDED.exchange_rates,
			ad_spend         = EXCLUDED.ad_spend,
			expenses         = EXCLUDED.expenses,
			cpa_reference    = EXCLUDED.cpa_reference,
			rate_assumptions = EXCLUDED.rate_assumptions,
			updated_at       = EXCLUDED.updated_at`
	_, err = r.q.Exec(ctx, query,
		s.WorkspaceID, s.DefaultCountry, s.IncludeIVA, rates, adSpend, expenses, cpaRef, assumptions, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
