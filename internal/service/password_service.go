package service

type PasswordService interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	// CheckStrength enforces the signup/reset password policy.
	CheckStrength(password string) error
}
