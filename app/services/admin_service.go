package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/escobarvape/backend/app/models"
	"github.com/escobarvape/backend/pkg/apperr"
	"github.com/escobarvape/backend/pkg/auth"
)

// AdminStore is the slice of the admin repository the service needs.
type AdminStore interface {
	All(ctx context.Context) ([]models.Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Admin, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AdminService manages admin accounts. Every method is owner-only; the route
// layer enforces the role gate.
type AdminService struct {
	admins AdminStore
}

func NewAdminService(admins AdminStore) *AdminService {
	return &AdminService{admins: admins}
}

// AdminInput carries the writable admin fields. Password is plaintext on the
// way in and hashed before it touches the store.
type AdminInput struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,in=owner,branch manager"`
	Branch   string `json:"branch" validate:"nullable"`
}

// List returns every admin account.
func (s *AdminService) List(ctx context.Context) ([]models.Admin, error) {
	return s.admins.All(ctx)
}

// Create adds a new admin. Branch managers must name a branch; owners must
// not carry one.
func (s *AdminService) Create(ctx context.Context, in AdminInput) (*models.Admin, error) {
	if in.Role == models.RoleBranchManager && in.Branch == "" {
		return nil, apperr.New(apperr.InvalidInput, "branch managers must be assigned a branch")
	}
	if in.Role == models.RoleOwner {
		in.Branch = ""
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	admin := &models.Admin{
		Name:     in.Name,
		Username: in.Username,
		Password: hash,
		Role:     in.Role,
		Branch:   in.Branch,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// AdminUpdateInput carries the fields an existing admin may change. Role and
// username are immutable after creation.
type AdminUpdateInput struct {
	Name     string `json:"name" validate:"nullable"`
	Password string `json:"password" validate:"nullable,min=6"`
	Branch   string `json:"branch" validate:"nullable"`
}

// Update changes an admin's name, password, or branch.
func (s *AdminService) Update(ctx context.Context, id string, in AdminUpdateInput) (*models.Admin, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "invalid admin id %q", id)
	}

	current, err := s.admins.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if in.Name != "" {
		set["name"] = in.Name
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		set["password"] = hash
	}
	if in.Branch != "" {
		if current.Role != models.RoleBranchManager {
			return nil, apperr.New(apperr.InvalidInput, "only branch managers carry a branch")
		}
		set["branch"] = in.Branch
	}
	if len(set) == 0 {
		return current, nil
	}
	return s.admins.Update(ctx, oid, set)
}

// Delete removes an admin account. The caller may not delete itself.
func (s *AdminService) Delete(ctx context.Context, claims *auth.Claims, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.InvalidInput, "invalid admin id %q", id)
	}
	if claims != nil && claims.AdminID == id {
		return apperr.New(apperr.InvalidInput, "cannot delete your own account")
	}
	return s.admins.Delete(ctx, oid)
}
