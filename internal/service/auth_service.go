package service

import (
	"errors"

	"quizdeck_backend/internal/config"
	"quizdeck_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// AuthService guards the mutating endpoints behind a single admin
// credential. There are no user accounts; this is a personal tool.
type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

func (s *AuthService) Login(password string) (string, error) {
	if s.cfg.JWT.AdminPasswordHash == "" {
		return "", errors.New("admin login is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.JWT.AdminPasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	return util.GenerateJWT("admin", s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
}
