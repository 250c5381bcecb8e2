package auth

import (
	"context"

	"github.com/suhana-bhanu/attendance-system/internal/domain/employee"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Me(ctx context.Context) (employee.ProfileResponse, error)
}
