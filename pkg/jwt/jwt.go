package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/Coinnecta-api/internal/domain/entity"
)

// ErrUnknownRole el token declara un rol que no es entity.RoleOwner ni entity.RoleAnalyst.
var ErrUnknownRole = errors.New("jwt: rol desconocido")

// Claims del token de sesión: identidad del usuario, su espacio de trabajo y su rol.
// Role vacío significa token sin rol; RequireRole lo rechaza con 401.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id"`
	WorkspaceID string `json:"workspace_id"`
	Role        string `json:"role"`
}

func checkRole(role string) error {
	if role != "" && !entity.IsValidRole(role) {
		return fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return nil
}

// Generate firma (HS256) un token para userID dentro de workspaceID con el rol dado.
func Generate(secret, userID, workspaceID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if err := checkRole(role); err != nil {
		return "", err
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:      userID,
		WorkspaceID: workspaceID,
		Role:        role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y vencimiento y devuelve userID, workspaceID y role. Un token sin
// espacio de trabajo o con un rol desconocido también es inválido.
func Parse(secret, tokenString string) (userID, workspaceID, role string, err error) {
	if secret == "" {
		return "", "", "", fmt.Errorf("jwt: secret vacío")
	}
	var claims Claims
	_, err = jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", "", "", fmt.Errorf("jwt: %w", err)
	}
	if claims.WorkspaceID == "" {
		return "", "", "", fmt.Errorf("jwt: token sin espacio de trabajo")
	}
	if err := checkRole(claims.Role); err != nil {
		return "", "", "", err
	}
	return claims.UserID, claims.WorkspaceID, claims.Role, nil
}
