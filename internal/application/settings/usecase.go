// Package settings gestiona la configuración de cada espacio de trabajo: tasas de cambio,
// gasto publicitario, gastos operativos, supuestos del simulador y perfil.
package settings

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/market"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
)

// Load devuelve la configuración guardada o la inicial si el espacio aún no tiene.
func Load(ctx context.Context, repo repository.SettingsRepository, workspaceID string, defaultRates currency.RateTable) (*entity.Settings, error) {
	s, err := repo.Get(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if s == nil {
		return entity.DefaultSettings(workspaceID, defaultRates), nil
	}
	if s.ExchangeRates == nil {
		s.ExchangeRates = currency.RateTable{}
	}
	return s, nil
}

// SettingsUseCase casos de uso de configuración.
type SettingsUseCase struct {
	repo          repository.SettingsRepository
	workspaceRepo repository.WorkspaceRepository
	defaultRates  currency.RateTable
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, workspaceRepo repository.WorkspaceRepository, defaultRates currency.RateTable) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, workspaceRepo: workspaceRepo, defaultRates: defaultRates}
}

// Get devuelve la configuración completa con el perfil y la tabla de países.
func (uc *SettingsUseCase) Get(ctx context.Context, workspaceID string) (*dto.SettingsResponse, error) {
	s, err := Load(ctx, uc.repo, workspaceID, uc.defaultRates)
	if err != nil {
		return nil, err
	}
	ws, err := uc.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}
	return toSettingsResponse(s, ws), nil
}

// UpdateRates reemplaza la tabla de tasas. Los códigos deben ser de tres letras;
// USD se ignora porque es el pivote.
func (uc *SettingsUseCase) UpdateRates(ctx context.Context, workspaceID string, in dto.UpdateRatesRequest) (*dto.SettingsResponse, error) {
	rates := make(currency.RateTable, len(in.Rates))
	for code, amount := range in.Rates {
		if !isCurrencyCode(code) {
			return nil, fmt.Errorf("%w: moneda %q", domain.ErrInvalidInput, code)
		}
		rates[code] = amount.Dec()
	}
	return uc.mutate(ctx, workspaceID, func(s *entity.Settings) error {
		s.ExchangeRates = rates.Normalize()
		return nil
	})
}

// UpdateAdSpend reemplaza el gasto publicitario.
func (uc *SettingsUseCase) UpdateAdSpend(ctx context.Context, workspaceID string, in dto.AdSpendDTO) (*dto.SettingsResponse, error) {
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if !isCurrencyCode(cur) {
		return nil, fmt.Errorf("%w: moneda %q", domain.ErrInvalidInput, in.Currency)
	}
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: el gasto no puede ser negativo", domain.ErrInvalidInput)
	}
	return uc.mutate(ctx, workspaceID, func(s *entity.Settings) error {
		s.AdSpend = entity.AdSpendConfig{Amount: in.Amount.Dec(), Currency: cur, UsesAgency: in.UsesAgency}
		return nil
	})
}

// UpdateExpenses actualiza Shopify (USD) y otros gastos (moneda local).
func (uc *SettingsUseCase) UpdateExpenses(ctx context.Context, workspaceID string, in dto.UpdateExpensesRequest) (*dto.SettingsResponse, error) {
	return uc.mutate(ctx, workspaceID, func(s *entity.Settings) error {
		s.Expenses.ShopifyUSD = in.ShopifyUSD.Dec()
		s.Expenses.Other = in.Other.Dec()
		return nil
	})
}

// AddCardExpense agrega un gasto con tarjeta al final de la lista.
func (uc *SettingsUseCase) AddCardExpense(ctx context.Context, workspaceID string, in dto.AddCardExpenseRequest) (*dto.SettingsResponse, error) {
	name := strings.TrimSpace(in.Name)
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if name == "" || !isCurrencyCode(cur) {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, workspaceID, func(s *entity.Settings) error {
		s.Expenses.CardExpenses = append(s.Expenses.CardExpenses, entity.CardExpense{
			ID:       uuid.New().String(),
			Name:     name,
			Amount:   in.Amount.Dec(),
			Currency: cur,
		})
		return nil
	})
}

// RemoveCardExpense elimina un gasto con tarjeta por ID.
func (uc *SettingsUseCase) RemoveCardExpense(ctx context.Context, workspaceID, expenseID string) (*dto.SettingsResponse, error) {
	return uc.mutate(ctx, workspaceID, func(s *entity.Settings) error {
		kept := make([]entity.CardExpense, 0, len(s.Expenses.CardExpenses))
		for _, c := range s.Expenses.CardExpenses {
			if c.ID != expenseID {
				kept = append(kept, c)
			}
		}
		if len(kept) == len(s.Expenses.CardExpenses) {
			return domain.ErrNotFound
		}
		s.Expenses.CardExpenses = kept
		return nil
	})
}

// UpdateCPAReference guarda el CPA medio de referencia.
func (uc *SettingsUseCase) UpdateCPAReference(ctx context.Context, workspaceID string, in dto.CPAReferenceDTO) (*dto.SettingsResponse, error) {
	cur := strings.ToUpper(strings.TrimSpace(in.Currency))
	if !isCurrencyCode(cur) {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, workspaceID, func(s *entity.Settings) error {
		s.CPAReference = entity.CPAReference{Value: in.Value.Dec(), Currency: cur}
		return nil
	})
}

// UpdateRateAssumptions guarda confirmación y entrega, limitadas a [0, 100].
func (uc *SettingsUseCase) UpdateRateAssumptions(ctx context.Context, workspaceID string, in dto.RateAssumptionsDTO) (*dto.SettingsResponse, error) {
	return uc.mutate(ctx, workspaceID, func(s *entity.Settings) error {
		s.RateAssumptions = entity.RateAssumptions{
			ConfirmationPct: in.ConfirmationPct.Dec(),
			DeliveryPct:     in.DeliveryPct.Dec(),
		}.Clamped()
		return nil
	})
}

// UpdatePreferences país por defecto e inclusión de IVA.
func (uc *SettingsUseCase) UpdatePreferences(ctx context.Context, workspaceID string, in dto.PreferencesRequest) (*dto.SettingsResponse, error) {
	profile, ok := market.Profile(in.DefaultCountry)
	if !ok {
		return nil, fmt.Errorf("%w: país %q", domain.ErrInvalidInput, in.DefaultCountry)
	}
	return uc.mutate(ctx, workspaceID, func(s *entity.Settings) error {
		s.DefaultCountry = profile.Code
		s.IncludeIVA = in.IncludeIVA
		return nil
	})
}

// UpdateProfile actualiza nombre y empresa del perfil.
func (uc *SettingsUseCase) UpdateProfile(ctx context.Context, workspaceID string, in dto.ProfileDTO) (*dto.SettingsResponse, error) {
	ws, err := uc.workspaceRepo.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}
	ws.OwnerName = strings.TrimSpace(in.OwnerName)
	ws.BusinessName = strings.TrimSpace(in.BusinessName)
	ws.UpdatedAt = time.Now()
	if err := uc.workspaceRepo.UpdateProfile(ctx, ws); err != nil {
		return nil, err
	}
	return uc.Get(ctx, workspaceID)
}

// mutate carga, aplica fn y guarda la configuración completa.
func (uc *SettingsUseCase) mutate(ctx context.Context, workspaceID string, fn func(*entity.Settings) error) (*dto.SettingsResponse, error) {
	s, err := Load(ctx, uc.repo, workspaceID, uc.defaultRates)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar configuración: %w", err)
	}
	return uc.Get(ctx, workspaceID)
}

func isCurrencyCode(code string) bool {
	code = strings.TrimSpace(code)
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func toSettingsResponse(s *entity.Settings, ws *entity.Workspace) *dto.SettingsResponse {
	rates := make(map[string]dto.Amount, len(s.ExchangeRates))
	for code, r := range s.ExchangeRates {
		rates[code] = dto.NewAmount(r)
	}
	cards := make([]dto.CardExpenseDTO, 0, len(s.Expenses.CardExpenses))
	for _, c := range s.Expenses.CardExpenses {
		cards = append(cards, dto.CardExpenseDTO{ID: c.ID, Name: c.Name, Amount: dto.NewAmount(c.Amount), Currency: c.Currency})
	}
	return &dto.SettingsResponse{
		DefaultCountry: s.DefaultCountry,
		IncludeIVA:     s.IncludeIVA,
		ExchangeRates:  rates,
		AdSpend: dto.AdSpendDTO{
			Amount:     dto.NewAmount(s.AdSpend.Amount),
			Currency:   s.AdSpend.Currency,
			UsesAgency: s.AdSpend.UsesAgency,
		},
		Expenses: dto.ExpensesDTO{
			ShopifyUSD:   dto.NewAmount(s.Expenses.ShopifyUSD),
			CardExpenses: cards,
			Other:        dto.NewAmount(s.Expenses.Other),
		},
		CPAReference: dto.CPAReferenceDTO{Value: dto.NewAmount(s.CPAReference.Value), Currency: s.CPAReference.Currency},
		RateAssumptions: dto.RateAssumptionsDTO{
			ConfirmationPct: dto.NewAmount(s.RateAssumptions.ConfirmationPct),
			DeliveryPct:     dto.NewAmount(s.RateAssumptions.DeliveryPct),
		},
		Profile:   dto.ProfileDTO{OwnerName: ws.OwnerName, BusinessName: ws.BusinessName},
		Countries: market.Profiles(),
		UpdatedAt: s.UpdatedAt,
	}
}
