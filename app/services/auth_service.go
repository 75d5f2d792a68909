package services

import (
	"context"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/auth"
)

// AdminReader is the slice of the admin store the auth service needs.
type AdminReader interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// AuthService authenticates admins and issues session tokens.
type AuthService struct {
	admins AdminReader
}

func NewAuthService(admins AdminReader) *AuthService {
	return &AuthService{admins: admins}
}

// Login verifies the credentials and returns a signed token plus the admin.
// Bad username and bad password both come back as the same Unauthenticated
// error so the response does not reveal which half was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.Admin, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return "", nil, apperr.New(apperr.Unauthenticated, "invalid username or password")
		}
		return "", nil, err
	}

	if !auth.CheckPassword(admin.Password, password) {
		return "", nil, apperr.New(apperr.Unauthenticated, "invalid username or password")
	}

	token, err := auth.GenerateToken(admin.ID.Hex(), admin.Role, admin.Branch)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}
