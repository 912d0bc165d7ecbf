package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/statera-app/statera-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedUserDetail(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.UserDetail {
	tb.Helper()
	d := &types.UserDetail{
		ID:     uuid.New(),
		UserID: userID,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed user detail: %v", err)
	}
	return d
}

func SeedSession(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.Session {
	tb.Helper()
	s := &types.Session{
		ID:           uuid.New(),
		UserID:       &userID,
		LastActivity: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed session: %v", err)
	}
	return s
}

func SeedUserRole(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, role string) *types.UserRole {
	tb.Helper()
	r := &types.UserRole{
		ID:     uuid.New(),
		UserID: &userID,
		Role:   role,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed user role: %v", err)
	}
	return r
}

func SeedOAuthAccessToken(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.OAuthAccessToken {
	tb.Helper()
	t := &types.OAuthAccessToken{
		ID:     uuid.NewString(),
		UserID: &userID,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed oauth access token: %v", err)
	}
	return t
}

func SeedOrganization(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.Organization {
	tb.Helper()
	o := &types.Organization{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "org",
		Slug:   "org-" + uuid.NewString()[:8],
	}
	if err := tx.WithContext(ctx).Create(o).Error; err != nil {
		tb.Fatalf("seed organization: %v", err)
	}
	return o
}

func SeedGroup(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, orgID *uuid.UUID) *types.Group {
	tb.Helper()
	g := &types.Group{
		ID:             uuid.New(),
		UserID:         userID,
		OrganizationID: orgID,
		Name:           "group",
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed group: %v", err)
	}
	return g
}

func SeedMember(tb testing.TB, ctx context.Context, tx *gorm.DB, orgID *uuid.UUID, email string) *types.Member {
	tb.Helper()
	m := &types.Member{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Email:          email,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed member: %v", err)
	}
	return m
}

func SeedPlan(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, amount int64) *types.Plan {
	tb.Helper()
	p := &types.Plan{
		ID:       uuid.New(),
		Name:     name,
		Interval: "month",
		Amount:   amount,
		Currency: "usd",
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed plan: %v", err)
	}
	return p
}

func SeedSubscription(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, planID *uuid.UUID, status string, startsAt, endsAt *time.Time) *types.Subscription {
	tb.Helper()
	s := &types.Subscription{
		ID:       uuid.New(),
		UserID:   userID,
		PlanID:   planID,
		Status:   status,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed subscription: %v", err)
	}
	return s
}

func SeedInvoice(tb testing.TB, ctx context.Context, tx *gorm.DB, subID uuid.UUID, amountDue int64) *types.Invoice {
	tb.Helper()
	i := &types.Invoice{
		ID:             uuid.New(),
		SubscriptionID: subID,
		AmountDue:      amountDue,
		AmountPaid:     amountDue,
		Currency:       "usd",
		Status:         types.InvoiceStatusPaid,
		ExternalRef:    fmt.Sprintf("in_%s", uuid.NewString()[:8]),
	}
	if err := tx.WithContext(ctx).Create(i).Error; err != nil {
		tb.Fatalf("seed invoice: %v", err)
	}
	return i
}

func SeedAnnouncement(tb testing.TB, ctx context.Context, tx *gorm.DB, title string) *types.Announcement {
	tb.Helper()
	a := &types.Announcement{
		ID:    uuid.New(),
		Title: title,
		Body:  "body",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed announcement: %v", err)
	}
	return a
}

func SeedAssessment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.Assessment {
	tb.Helper()
	a := &types.Assessment{
		ID:     uuid.New(),
		UserID: &userID,
		Title:  "assessment",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed assessment: %v", err)
	}
	return a
}

func SeedAnswer(tb testing.TB, ctx context.Context, tx *gorm.DB, assessmentID, userID uuid.UUID) *types.Answer {
	tb.Helper()
	a := &types.Answer{
		ID:           uuid.New(),
		AssessmentID: assessmentID,
		UserID:       &userID,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed answer: %v", err)
	}
	return a
}
