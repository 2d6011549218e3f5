// Package memory implementa los repositorios en memoria. Lo usan la CLI (modo sin base
// de datos) y los tests de la capa de aplicación.
package memory

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
)

// Store datos de todos los espacios de trabajo protegidos por un único mutex.
type Store struct {
	txMu       sync.Mutex // serializa RunRegistration y RunImport
	mu         sync.RWMutex
	users      map[string]entity.User
	workspaces map[string]entity.Workspace
	settings   map[string]entity.Settings
	products   map[string]entity.SavedProduct
	imports    map[string]map[int64]entity.ImportBatch // workspaceID → id → batch
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]entity.User),
		workspaces: make(map[string]entity.Workspace),
		settings:   make(map[string]entity.Settings),
		products:   make(map[string]entity.SavedProduct),
		imports:    make(map[string]map[int64]entity.ImportBatch),
	}
}

// Users repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s} }

// Workspaces repositorio de espacios de trabajo.
func (s *Store) Workspaces() *WorkspaceRepo { return &WorkspaceRepo{s} }

// Settings repositorio de configuración.
func (s *Store) Settings() *SettingsRepo { return &SettingsRepo{s} }

// Products repositorio de productos guardados.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s} }

// Imports repositorio del historial de importaciones.
func (s *Store) Imports() *ImportBatchRepo { return &ImportBatchRepo{s} }

// RunRegistration ejecuta fn con los repositorios del almacén. Si fn falla, el
// almacén vuelve al estado previo.
func (s *Store) RunRegistration(ctx context.Context, fn func(repository.WorkspaceRepository, repository.UserRepository, repository.SettingsRepository) error) error {
	return s.atomically(func() error {
		return fn(s.Workspaces(), s.Users(), s.Settings())
	})
}

// RunImport como RunRegistration, con los repositorios de importaciones.
func (s *Store) RunImport(ctx context.Context, fn func(repository.ImportBatchRepository, repository.WorkspaceRepository) error) error {
	return s.atomically(func() error {
		return fn(s.Imports(), s.Workspaces())
	})
}

type snapshot struct {
	users      map[string]entity.User
	workspaces map[string]entity.Workspace
	settings   map[string]entity.Settings
	products   map[string]entity.SavedProduct
	imports    map[string]map[int64]entity.ImportBatch
}

// atomically restaura la copia tomada antes de fn cuando fn falla. Las escrituras
// hechas fuera de una transacción mientras fn corre se pierden en ese caso.
func (s *Store) atomically(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snap := snapshot{
		users:      maps.Clone(s.users),
		workspaces: maps.Clone(s.workspaces),
		settings:   maps.Clone(s.settings),
		products:   maps.Clone(s.products),
		imports:    make(map[string]map[int64]entity.ImportBatch, len(s.imports)),
	}
	for ws, byID := range s.imports {
		snap.imports[ws] = maps.Clone(byID)
	}
	s.mu.RUnlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.users, s.workspaces, s.settings = snap.users, snap.workspaces, snap.settings
		s.products, s.imports = snap.products, snap.imports
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── Users ───────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// ── Workspaces ──────────────────────────────────────────────────────────────

// WorkspaceRepo implementa repository.WorkspaceRepository.
type WorkspaceRepo struct{ s *Store }

var _ repository.WorkspaceRepository = (*WorkspaceRepo)(nil)

func (r *WorkspaceRepo) Create(ctx context.Context, ws *entity.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workspaces[ws.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.workspaces[ws.ID] = *ws
	return nil
}

func (r *WorkspaceRepo) GetByID(ctx context.Context, id string) (*entity.Workspace, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ws, ok := r.s.workspaces[id]
	if !ok {
		return nil, nil
	}
	return &ws, nil
}

func (r *WorkspaceRepo) UpdateProfile(ctx context.Context, ws *entity.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.workspaces[ws.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.OwnerName = ws.OwnerName
	cur.BusinessName = ws.BusinessName
	cur.UpdatedAt = ws.UpdatedAt
	r.s.workspaces[ws.ID] = cur
	return nil
}

func (r *WorkspaceRepo) SetActiveImport(ctx context.Context, workspaceID string, importID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.workspaces[workspaceID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.ActiveImportID = importID
	r.s.workspaces[workspaceID] = cur
	return nil
}

// ── Settings ────────────────────────────────────────────────────────────────

// SettingsRepo implementa repository.SettingsRepository.
type SettingsRepo struct{ s *Store }

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

func (r *SettingsRepo) Get(ctx context.Context, workspaceID string) (*entity.Settings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	cfg, ok := r.s.settings[workspaceID]
	if !ok {
		return nil, nil
	}
	out := cloneSettings(cfg)
	return &out, nil
}

func (r *SettingsRepo) Save(ctx context.Context, settings *entity.Settings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings[settings.WorkspaceID] = cloneSettings(*settings)
	return nil
}

func cloneSettings(cfg entity.Settings) entity.Settings {
	cfg.ExchangeRates = cfg.ExchangeRates.Clone()
	cfg.Expenses.CardExpenses = slices.Clone(cfg.Expenses.CardExpenses)
	return cfg
}

// ── Products ────────────────────────────────────────────────────────────────

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, product *entity.SavedProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, workspaceID, id string) (*entity.SavedProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok || p.WorkspaceID != workspaceID {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.SavedProduct) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[product.ID]
	if !ok || cur.WorkspaceID != product.WorkspaceID {
		return domain.ErrNotFound
	}
	r.s.products[product.ID] = *product
	return nil
}

// ListByWorkspace devuelve los productos más recientes primero.
func (r *ProductRepo) ListByWorkspace(ctx context.Context, workspaceID, country string) ([]*entity.SavedProduct, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.SavedProduct, 0)
	for _, p := range r.s.products {
		if p.WorkspaceID != workspaceID || (country != "" && p.Country != country) {
			continue
		}
		p := p
		out = append(out, &p)
	}
	slices.SortFunc(out, func(a, b *entity.SavedProduct) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *ProductRepo) Delete(ctx context.Context, workspaceID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok || p.WorkspaceID != workspaceID {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// ── Imports ─────────────────────────────────────────────────────────────────

// ImportBatchRepo implementa repository.ImportBatchRepository.
type ImportBatchRepo struct{ s *Store }

var _ repository.ImportBatchRepository = (*ImportBatchRepo)(nil)

func (r *ImportBatchRepo) Create(ctx context.Context, batch *entity.ImportBatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byID, ok := r.s.imports[batch.WorkspaceID]
	if !ok {
		byID = make(map[int64]entity.ImportBatch)
		r.s.imports[batch.WorkspaceID] = byID
	}
	if _, exists := byID[batch.ID]; exists {
		return domain.ErrDuplicate
	}
	byID[batch.ID] = *batch
	return nil
}

func (r *ImportBatchRepo) GetByID(ctx context.Context, workspaceID string, id int64) (*entity.ImportBatch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.imports[workspaceID][id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *ImportBatchRepo) List(ctx context.Context, workspaceID string, limit int) ([]*entity.ImportBatch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byID := r.s.imports[workspaceID]
	out := make([]*entity.ImportBatch, 0, len(byID))
	for _, b := range byID {
		b := b
		out = append(out, &b)
	}
	slices.SortFunc(out, func(a, b *entity.ImportBatch) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ImportBatchRepo) LatestID(ctx context.Context, workspaceID string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var latest int64
	for id := range r.s.imports[workspaceID] {
		if id > latest {
			latest = id
		}
	}
	return latest, nil
}

func (r *ImportBatchRepo) UpdateMetadata(ctx context.Context, workspaceID string, id int64, displayName, notes string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.imports[workspaceID][id]
	if !ok {
		return domain.ErrNotFound
	}
	b.DisplayName = displayName
	b.Notes = notes
	r.s.imports[workspaceID][id] = b
	return nil
}

func (r *ImportBatchRepo) Delete(ctx context.Context, workspaceID string, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.imports[workspaceID][id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.imports[workspaceID], id)
	return nil
}
