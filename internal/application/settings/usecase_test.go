package settings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/application/settings"
	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/infrastructure/memory"
)

const wsID = "ws-1"

func amount(s string) dto.Amount { return dto.NewAmount(decimal.RequireFromString(s)) }

func newUseCase(t *testing.T) *settings.SettingsUseCase {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Workspaces().Create(context.Background(), &entity.Workspace{ID: wsID, OwnerName: "Ana"}))
	return settings.NewSettingsUseCase(store.Settings(), store.Workspaces(), currency.DefaultRates())
}

func TestGet_SinConfiguracionDevuelveValoresIniciales(t *testing.T) {
	uc := newUseCase(t)
	res, err := uc.Get(context.Background(), wsID)
	require.NoError(t, err)
	assert.Equal(t, "colombia", res.DefaultCountry)
	assert.Equal(t, "Ana", res.Profile.OwnerName)
	assert.True(t, res.ExchangeRates["MXN"].Equal(decimal.RequireFromString("17.5")))
	assert.Len(t, res.Countries, 3)
	assert.Empty(t, res.Expenses.CardExpenses)

	_, err = uc.Get(context.Background(), "otro")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateRates_NormalizaCodigos(t *testing.T) {
	uc := newUseCase(t)
	res, err := uc.UpdateRates(context.Background(), wsID, dto.UpdateRatesRequest{Rates: map[string]dto.Amount{
		"cop": amount("4200"),
		"USD": amount("2"),
	}})
	require.NoError(t, err)
	assert.True(t, res.ExchangeRates["COP"].Equal(decimal.NewFromInt(4200)))
	_, hasUSD := res.ExchangeRates["USD"]
	assert.False(t, hasUSD, "USD es el pivote y no se guarda")

	_, err = uc.UpdateRates(context.Background(), wsID, dto.UpdateRatesRequest{Rates: map[string]dto.Amount{"PESOS": amount("1")}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdateAdSpend(t *testing.T) {
	uc := newUseCase(t)
	res, err := uc.UpdateAdSpend(context.Background(), wsID, dto.AdSpendDTO{Amount: amount("500"), Currency: "eur", UsesAgency: true})
	require.NoError(t, err)
	assert.Equal(t, "EUR", res.AdSpend.Currency)
	assert.True(t, res.AdSpend.UsesAgency)

	_, err = uc.UpdateAdSpend(context.Background(), wsID, dto.AdSpendDTO{Amount: amount("-1"), Currency: "USD"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCardExpenses_AltaYBaja(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	res, err := uc.AddCardExpense(ctx, wsID, dto.AddCardExpenseRequest{Name: "Dominio", Amount: amount("10"), Currency: "usd"})
	require.NoError(t, err)
	res, err = uc.AddCardExpense(ctx, wsID, dto.AddCardExpenseRequest{Name: "Apps", Amount: amount("20"), Currency: "EUR"})
	require.NoError(t, err)
	require.Len(t, res.Expenses.CardExpenses, 2)
	assert.Equal(t, "Dominio", res.Expenses.CardExpenses[0].Name, "se conserva el orden de alta")

	res, err = uc.RemoveCardExpense(ctx, wsID, res.Expenses.CardExpenses[0].ID)
	require.NoError(t, err)
	require.Len(t, res.Expenses.CardExpenses, 1)
	assert.Equal(t, "Apps", res.Expenses.CardExpenses[0].Name)

	_, err = uc.RemoveCardExpense(ctx, wsID, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.AddCardExpense(ctx, wsID, dto.AddCardExpenseRequest{Name: " ", Amount: amount("1"), Currency: "USD"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpdateRateAssumptions_LimitaRango(t *testing.T) {
	uc := newUseCase(t)
	res, err := uc.UpdateRateAssumptions(context.Background(), wsID, dto.RateAssumptionsDTO{
		ConfirmationPct: amount("120"),
		DeliveryPct:     amount("-5"),
	})
	require.NoError(t, err)
	assert.True(t, res.RateAssumptions.ConfirmationPct.Equal(decimal.NewFromInt(100)))
	assert.True(t, res.RateAssumptions.DeliveryPct.IsZero())
}

func TestPreferenciasYPerfil(t *testing.T) {
	uc := newUseCase(t)
	ctx := context.Background()

	res, err := uc.UpdatePreferences(ctx, wsID, dto.PreferencesRequest{DefaultCountry: "ESPANA", IncludeIVA: true})
	require.NoError(t, err)
	assert.Equal(t, "espana", res.DefaultCountry)
	assert.True(t, res.IncludeIVA)

	_, err = uc.UpdatePreferences(ctx, wsID, dto.PreferencesRequest{DefaultCountry: "peru"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	res, err = uc.UpdateProfile(ctx, wsID, dto.ProfileDTO{OwnerName: " Luis ", BusinessName: "Tienda Dos"})
	require.NoError(t, err)
	assert.Equal(t, "Luis", res.Profile.OwnerName)
	assert.Equal(t, "Tienda Dos", res.Profile.BusinessName)
	assert.Equal(t, "espana", res.DefaultCountry, "el perfil no altera la configuración")
}
