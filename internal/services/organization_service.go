package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/dberr"
	"github.com/statera-app/statera-backend/internal/data/repos"
	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type OrganizationService interface {
	Create(ctx context.Context, userID uuid.UUID, name, slug string) (*types.Organization, error)
	Rename(ctx context.Context, orgID uuid.UUID, name string) (*types.Organization, error)
	GetByID(ctx context.Context, orgID uuid.UUID) (*types.Organization, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*types.Organization, error)
}

type organizationService struct {
	db         *gorm.DB
	log        *logger.Logger
	orgRepo    repos.OrganizationRepo
	windowSync ContractWindowSyncService
}

func NewOrganizationService(db *gorm.DB, log *logger.Logger, orgRepo repos.OrganizationRepo, windowSync ContractWindowSyncService) OrganizationService {
	return &organizationService{
		db:         db,
		log:        log.With("service", "OrganizationService"),
		orgRepo:    orgRepo,
		windowSync: windowSync,
	}
}

func (os *organizationService) Create(ctx context.Context, userID uuid.UUID, name, slug string) (*types.Organization, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	created, err := os.orgRepo.Create(ctx, nil, []*types.Organization{{
		UserID: userID,
		Name:   name,
		Slug:   strings.TrimSpace(slug),
	}})
	if err != nil {
		return nil, dberr.Map(err)
	}

	o := created[0]
	os.windowSync.OnOrganizationWritten(ctx, o)
	return o, nil
}

func (os *organizationService) Rename(ctx context.Context, orgID uuid.UUID, name string) (*types.Organization, error) {
	o, err := os.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	o.Name = strings.TrimSpace(name)
	if o.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if err := os.orgRepo.Update(ctx, nil, o); err != nil {
		return nil, err
	}
	os.windowSync.OnOrganizationWritten(ctx, o)
	return o, nil
}

func (os *organizationService) GetByID(ctx context.Context, orgID uuid.UUID) (*types.Organization, error) {
	found, err := os.orgRepo.GetByIDs(ctx, nil, []uuid.UUID{orgID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, dberr.ErrNotFound
	}
	return found[0], nil
}

func (os *organizationService) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*types.Organization, error) {
	return os.orgRepo.ListByUserID(ctx, nil, userID)
}
