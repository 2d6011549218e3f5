package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Coinnecta-api/internal/application/dto"
	"github.com/jhoicas/Coinnecta-api/internal/domain"
	"github.com/jhoicas/Coinnecta-api/internal/domain/currency"
	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
	"github.com/jhoicas/Coinnecta-api/internal/domain/repository"
	"github.com/jhoicas/Coinnecta-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta el alta de un espacio de trabajo en una sola transacción.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		workspaces repository.WorkspaceRepository,
		users repository.UserRepository,
		settings repository.SettingsRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	tx           TxRunner
	jwtCfg       JWTConfig
	defaultRates currency.RateTable
}

// NewAuthUseCase construye el caso de uso de auth. defaultRates inicializa las tasas
// de cada espacio de trabajo nuevo.
func NewAuthUseCase(userRepo repository.UserRepository, tx TxRunner, jwtCfg JWTConfig, defaultRates currency.RateTable) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tx: tx, jwtCfg: jwtCfg, defaultRates: defaultRates}
}

// Register crea el espacio de trabajo, su configuración inicial y el usuario propietario.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	name := in.OwnerName
	if name == "" {
		name = email
	}
	ws := &entity.Workspace{
		ID:           uuid.New().String(),
		OwnerName:    in.OwnerName,
		BusinessName: in.BusinessName,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		WorkspaceID:  ws.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleOwner,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	settings := entity.DefaultSettings(ws.ID, uc.defaultRates)

	err = uc.tx.RunRegistration(ctx, func(workspaces repository.WorkspaceRepository, users repository.UserRepository, settingsRepo repository.SettingsRepository) error {
		if err := workspaces.Create(ctx, ws); err != nil {
			return err
		}
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		return settingsRepo.Save(ctx, settings)
	})
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.WorkspaceID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		WorkspaceID: u.WorkspaceID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
