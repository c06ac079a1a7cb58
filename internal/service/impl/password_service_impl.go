package impl

import (
	"strings"
	"unicode"

	"campusevents/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const specialChars = "@$!%*?&"

type PasswordServiceImpl struct {
	cost int
}

func NewPasswordServiceBcrypt() *PasswordServiceImpl {
	return &PasswordServiceImpl{cost: bcrypt.DefaultCost}
}

func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (p *PasswordServiceImpl) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckStrength enforces the signup policy: at least 8 characters with an
// uppercase letter, a lowercase letter, a digit, and one of @$!%*?&.
func (p *PasswordServiceImpl) CheckStrength(password string) error {
	if len(password) < 8 {
		return domain.ErrPasswordLength
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	switch {
	case !upper:
		return domain.ErrPasswordUpper
	case !lower:
		return domain.ErrPasswordLower
	case !digit:
		return domain.ErrPasswordDigit
	case !special:
		return domain.ErrPasswordSpecial
	}
	return nil
}
