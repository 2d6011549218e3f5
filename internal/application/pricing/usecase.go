// Package pricing contiene los casos de uso del evaluador de productos: previsualización
// de métricas y CRUD de productos guardados con su foto de métricas.
package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/application/settings"
	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/margin"
	"github.com/jhoicas/Coinnecta-api/internal/domain/market"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
)

// ProductUseCase casos de uso de productos. Las métricas se recalculan en cada
// guardado con los supuestos de confirmación/entrega vigentes.
type ProductUseCase struct {
	repo         repository.ProductRepository
	settingsRepo repository.SettingsRepository
	defaultRates currency.RateTable
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, settingsRepo repository.SettingsRepository, defaultRates currency.RateTable) *ProductUseCase {
	return &ProductUseCase{repo: repo, settingsRepo: settingsRepo, defaultRates: defaultRates}
}

// Preview calcula las métricas de un borrador sin guardarlo. Si el precio es 0 la
// respuesta lleva Metrics nil.
func (uc *ProductUseCase) Preview(ctx context.Context, workspaceID string, in dto.ProductRequest) (*dto.ProductPreviewResponse, error) {
	s, err := settings.Load(ctx, uc.settingsRepo, workspaceID, uc.defaultRates)
	if err != nil {
		return nil, err
	}
	draft := in.Draft()
	if draft.Country == "" {
		draft.Country = s.DefaultCountry
	}
	profile, ok := market.Profile(draft.Country)
	if !ok {
		return nil, fmt.Errorf("%w: país %q", domain.ErrInvalidInput, draft.Country)
	}

	assumptions := s.RateAssumptions
	if in.ConfirmationPct != nil {
		assumptions.ConfirmationPct = in.ConfirmationPct.Dec()
	}
	if in.DeliveryPct != nil {
		assumptions.DeliveryPct = in.DeliveryPct.Dec()
	}
	assumptions = assumptions.Clamped()

	return &dto.ProductPreviewResponse{
		Metrics: margin.ComputeMetrics(draft, assumptions),
		Assumptions: dto.RateAssumptionsDTO{
			ConfirmationPct: dto.NewAmount(assumptions.ConfirmationPct),
			DeliveryPct:     dto.NewAmount(assumptions.DeliveryPct),
		},
		Currency: profile.CurrencyCode,
	}, nil
}

// Create guarda un producto nuevo. Requiere nombre y precio de venta distinto de 0.
func (uc *ProductUseCase) Create(ctx context.Context, workspaceID string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	draft, metrics, err := uc.evaluate(ctx, workspaceID, in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.SavedProduct{
		ID:           uuid.New().String(),
		WorkspaceID:  workspaceID,
		ProductDraft: draft,
		Metrics:      *metrics,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto guardado.
func (uc *ProductUseCase) GetByID(ctx context.Context, workspaceID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update reemplaza el producto completo y recalcula su foto de métricas.
func (uc *ProductUseCase) Update(ctx context.Context, workspaceID, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByID(ctx, workspaceID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	draft, metrics, err := uc.evaluate(ctx, workspaceID, in)
	if err != nil {
		return nil, err
	}
	existing.ProductDraft = draft
	existing.Metrics = *metrics
	existing.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return toProductResponse(existing), nil
}

// List lista los productos del espacio; country vacío = todos.
func (uc *ProductUseCase) List(ctx context.Context, workspaceID, country string) (*dto.ProductListResponse, error) {
	if country != "" && !market.IsSupported(country) {
		return nil, fmt.Errorf("%w: país %q", domain.ErrInvalidInput, country)
	}
	list, err := uc.repo.ListByWorkspace(ctx, workspaceID, strings.ToLower(country))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Delete elimina un producto guardado.
func (uc *ProductUseCase) Delete(ctx context.Context, workspaceID, id string) error {
	return uc.repo.Delete(ctx, workspaceID, id)
}

// evaluate valida el borrador y calcula sus métricas con los supuestos guardados.
func (uc *ProductUseCase) evaluate(ctx context.Context, workspaceID string, in dto.ProductRequest) (entity.ProductDraft, *entity.ProductMetrics, error) {
	s, err := settings.Load(ctx, uc.settingsRepo, workspaceID, uc.defaultRates)
	if err != nil {
		return entity.ProductDraft{}, nil, err
	}
	draft := in.Draft()
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Country == "" {
		draft.Country = s.DefaultCountry
	}
	profile, ok := market.Profile(draft.Country)
	if !ok {
		return entity.ProductDraft{}, nil, fmt.Errorf("%w: país %q", domain.ErrInvalidInput, draft.Country)
	}
	draft.Country = profile.Code
	if draft.Name == "" {
		return entity.ProductDraft{}, nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	metrics := margin.ComputeMetrics(draft, s.RateAssumptions.Clamped())
	if metrics == nil {
		return entity.ProductDraft{}, nil, fmt.Errorf("%w: el precio de venta es obligatorio", domain.ErrInvalidInput)
	}
	return draft, metrics, nil
}

func toProductResponse(p *entity.SavedProduct) *dto.ProductResponse {
	cur := ""
	if profile, ok := market.Profile(p.Country); ok {
		cur = profile.CurrencyCode
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Country:    p.Country,
		Currency:   cur,
		SalePrice:  dto.NewAmount(p.SalePrice),
		Cost:       dto.NewAmount(p.Cost),
		Shipping:   dto.NewAmount(p.Shipping),
		TargetCPA:  dto.NewAmount(p.TargetCPA),
		IncludeIVA: p.IncludeIVA,
		Metrics:    p.Metrics,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
