package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/politask/politask/internal/api"
)

type authService struct {
	client *api.Client
}

// NewAuthService wraps login/register/logout. Credential validation that
// can fail locally never reaches the network.
func NewAuthService(client *api.Client) AuthService {
	return &authService{client: client}
}

func (s *authService) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("email y contraseña son obligatorios")
	}
	return s.client.Login(ctx, email, password)
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*api.AuthResult, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("el nombre es obligatorio")
	}
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("el email no es válido")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("la contraseña debe tener al menos 6 caracteres")
	}
	return s.client.Register(ctx, name, email, password)
}

// ChangePassword validates the request locally. The server exposes no
// password endpoint yet (the web client ships the same stub page), so a
// well-formed request still reports the feature as unavailable.
func (s *authService) ChangePassword(ctx context.Context, current, updated string) error {
	if current == "" || updated == "" {
		return fmt.Errorf("la contraseña actual y la nueva son obligatorias")
	}
	if len(updated) < 6 {
		return fmt.Errorf("la contraseña debe tener al menos 6 caracteres")
	}
	return fmt.Errorf("el cambio de contraseña aún no está disponible en el servidor")
}

func (s *authService) Logout() error {
	return s.client.Logout()
}

func (s *authService) Authenticated() bool {
	return s.client.Session().Authenticated()
}
