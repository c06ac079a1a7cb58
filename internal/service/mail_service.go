package service

import "context"

type MailService interface {
	SendVerification(ctx context.Context, to string, code string) error
	SendResetCode(ctx context.Context, to string, code string) error
}
