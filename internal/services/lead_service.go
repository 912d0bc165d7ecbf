package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/statera-app/statera-backend/internal/data/dberr"
	"github.com/statera-app/statera-backend/internal/data/repos"
	types "github.com/statera-app/statera-backend/internal/domain"
	"github.com/statera-app/statera-backend/internal/platform/apierr"
	"github.com/statera-app/statera-backend/internal/platform/logger"
)

type LeadService interface {
	Capture(ctx context.Context, email, firstName, lastName, company, source string) (*types.Lead, error)
	List(ctx context.Context, status string, limit int) ([]*types.Lead, error)
	UpdateStatus(ctx context.Context, leadID uuid.UUID, status string) error
}

type leadService struct {
	db       *gorm.DB
	log      *logger.Logger
	leadRepo repos.LeadRepo
}

func NewLeadService(db *gorm.DB, log *logger.Logger, leadRepo repos.LeadRepo) LeadService {
	return &leadService{
		db:       db,
		log:      log.With("service", "LeadService"),
		leadRepo: leadRepo,
	}
}

var validLeadStatuses = map[string]struct{}{
	types.LeadStatusNew:       {},
	types.LeadStatusContacted: {},
	types.LeadStatusConverted: {},
	types.LeadStatusDropped:   {},
}

func (ls *leadService) Capture(ctx context.Context, email, firstName, lastName, company, source string) (*types.Lead, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apierr.New(http.StatusBadRequest, "lead_email_required", fmt.Errorf("email required"))
	}

	lead, err := ls.leadRepo.Create(ctx, nil, &types.Lead{
		Email:     email,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Company:   strings.TrimSpace(company),
		Status:    types.LeadStatusNew,
		Source:    strings.TrimSpace(source),
	})
	if dberr.IsConflict(err) {
		return nil, apierr.New(http.StatusConflict, "lead_exists", err)
	}
	if err != nil {
		return nil, err
	}
	ls.log.Info("lead captured", "lead_id", lead.ID, "source", lead.Source)
	return lead, nil
}

func (ls *leadService) List(ctx context.Context, status string, limit int) ([]*types.Lead, error) {
	return ls.leadRepo.List(ctx, nil, status, limit)
}

func (ls *leadService) UpdateStatus(ctx context.Context, leadID uuid.UUID, status string) error {
	if _, ok := validLeadStatuses[status]; !ok {
		return apierr.New(http.StatusBadRequest, "invalid_lead_status", fmt.Errorf("invalid lead status %q", status))
	}
	return ls.leadRepo.UpdateStatus(ctx, nil, leadID, status)
}
