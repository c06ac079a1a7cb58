package mail

import (
	"context"
	"log/slog"
)

// DevLogSender writes outbound mail to the log instead of sending it. Used
// when no SendGrid key is configured, mirroring a local mail backend.
type DevLogSender struct{}

func NewDevLogSender() *DevLogSender { return &DevLogSender{} }

func (DevLogSender) SendVerification(_ context.Context, to, code string) error {
	slog.Info("mail not configured, logging verification code", "to", to, "code", code)
	return nil
}

func (DevLogSender) SendResetCode(_ context.Context, to, code string) error {
	slog.Info("mail not configured, logging reset code", "to", to, "code", code)
	return nil
}
