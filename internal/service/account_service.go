package service

import (
	"context"

	"campusevents/internal/dto"
)

type AccountService interface {
	Signup(ctx context.Context, email, password string) (*dto.SignupResponse, error)
	Verify(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error
}
