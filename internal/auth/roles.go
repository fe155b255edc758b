package auth

import (
	"errors"

	"github.com/spec-kit/course-marketplace/internal/domain"
)

// keyring maps each role to its own signing secret.
type keyring map[domain.Role][]byte

func newKeyring(adminSecret, userSecret string) (keyring, error) {
	if adminSecret == "" || userSecret == "" {
		return nil, errors.New("auth: both role secrets are required")
	}
	if adminSecret == userSecret {
		return nil, errors.New("auth: admin and user secrets must differ")
	}
	return keyring{
		domain.RoleAdmin: []byte(adminSecret),
		domain.RoleUser:  []byte(userSecret),
	}, nil
}

func (k keyring) secret(role domain.Role) ([]byte, error) {
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	return k[role], nil
}
