package domain

import (
	"github.com/statera-app/statera-backend/internal/domain/announce"
	"github.com/statera-app/statera-backend/internal/domain/assess"
	"github.com/statera-app/statera-backend/internal/domain/auth"
	"github.com/statera-app/statera-backend/internal/domain/billing"
	"github.com/statera-app/statera-backend/internal/domain/org"
	"github.com/statera-app/statera-backend/internal/domain/user"
)

type User = user.User
type UserDetail = user.UserDetail
type Session = user.Session
type UserRole = user.UserRole

type OAuthAccessToken = auth.OAuthAccessToken
type OAuthAuthCode = auth.OAuthAuthCode
type OAuthDeviceCode = auth.OAuthDeviceCode

type Organization = org.Organization
type Group = org.Group
type Member = org.Member
type Lead = org.Lead

type Plan = billing.Plan
type Subscription = billing.Subscription
type Invoice = billing.Invoice

type Announcement = announce.Announcement
type AnnouncementOrganization = announce.AnnouncementOrganization
type AnnouncementGroup = announce.AnnouncementGroup
type AnnouncementMember = announce.AnnouncementMember

type Assessment = assess.Assessment
type Answer = assess.Answer

const (
	SubscriptionStatusActive   = billing.SubscriptionStatusActive
	SubscriptionStatusTrialing = billing.SubscriptionStatusTrialing
	SubscriptionStatusPastDue  = billing.SubscriptionStatusPastDue
	SubscriptionStatusCanceled = billing.SubscriptionStatusCanceled

	InvoiceStatusPaid = billing.InvoiceStatusPaid
	InvoiceStatusOpen = billing.InvoiceStatusOpen
	InvoiceStatusVoid = billing.InvoiceStatusVoid

	LeadStatusNew       = org.LeadStatusNew
	LeadStatusContacted = org.LeadStatusContacted
	LeadStatusConverted = org.LeadStatusConverted
	LeadStatusDropped   = org.LeadStatusDropped
)
