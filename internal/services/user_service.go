package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/dberr"
	"github.com/statera-app/statera-backend/internal/data/repos"
	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type UserService interface {
	Create(ctx context.Context, email, password, firstName, lastName string) (*types.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)

	// Remove tombstones the user and runs the ownership cascade inline. The
	// removal itself is the primary operation; cascade failures never undo it.
	Remove(ctx context.Context, userID uuid.UUID) error

	// Restore un-tombstones the user; dependents stay as the cascade left them.
	Restore(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	cascade  OwnershipCascadeService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, cascade OwnershipCascadeService) UserService {
	return &userService{
		db:       db,
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
		cascade:  cascade,
	}
}

func (us *userService) Create(ctx context.Context, email, password, firstName, lastName string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := us.userRepo.Create(ctx, nil, []*types.User{{
		Email:     email,
		Password:  string(hash),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}})
	if err != nil {
		return nil, dberr.Map(err)
	}
	return created[0], nil
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, dberr.ErrNotFound
	}
	return found[0], nil
}

func (us *userService) Remove(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	if err := us.userRepo.SoftDelete(ctx, nil, userID); err != nil {
		return err
	}
	us.log.Info("user removed", "user_id", userID)
	us.cascade.OnUserRemoved(ctx, userID)
	return nil
}

func (us *userService) Restore(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user id required")
	}
	if err := us.userRepo.Restore(ctx, nil, userID); err != nil {
		return err
	}
	us.cascade.OnUserRestored(ctx, userID)
	return nil
}
