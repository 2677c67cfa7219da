package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"family-planner/internal/model"
)

// ErrInvalidCredentials is returned for any failed login. The message is
// deliberately the same whether the name or the PIN was wrong.
var ErrInvalidCredentials = errors.New("invalid name or PIN")

// LastLoginStore persists the pre-fill hint for the login form.
type LastLoginStore interface {
	LastLogin(ctx context.Context) (*model.LastLogin, error)
	SaveLastLogin(ctx context.Context, last model.LastLogin) error
}

// AuthService authenticates household members against the fixed user set.
type AuthService struct {
	users    []model.User
	sessions LastLoginStore
}

func NewAuthService(users []model.User, sessions LastLoginStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login matches the name case-insensitively and the PIN exactly. On success
// the last-login hint is written best-effort; a store failure is logged and
// never blocks the login.
func (s *AuthService) Login(ctx context.Context, name, pin string) (*model.User, error) {
	name = strings.TrimSpace(name)
	pin = strings.TrimSpace(pin)

	for i := range s.users {
		u := &s.users[i]
		if strings.EqualFold(u.Name, name) && u.PIN == pin {
			if err := s.sessions.SaveLastLogin(ctx, model.LastLogin{Name: u.Name, PIN: u.PIN}); err != nil {
				log.Printf("save last login: %v", err)
			}
			user := *u
			return &user, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// LastLogin returns the stored pre-fill hint, but only when it still matches
// a configured user. Read errors degrade to "no hint".
func (s *AuthService) LastLogin(ctx context.Context) *model.LastLogin {
	last, err := s.sessions.LastLogin(ctx)
	if err != nil {
		log.Printf("load last login: %v", err)
		return nil
	}
	if last == nil {
		return nil
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Name, last.Name) {
			return last
		}
	}
	return nil
}
