package repos

import (
	"github.com/statera-app/statera-backend/internal/data/repos/announce"
	"github.com/statera-app/statera-backend/internal/data/repos/billing"
	"github.com/statera-app/statera-backend/internal/data/repos/org"
	"github.com/statera-app/statera-backend/internal/data/repos/user"
)

type UserRepo = user.UserRepo

type OrganizationRepo = org.OrganizationRepo
type MemberRepo = org.MemberRepo
type LeadRepo = org.LeadRepo

type PlanRepo = billing.PlanRepo
type SubscriptionRepo = billing.SubscriptionRepo
type InvoiceRepo = billing.InvoiceRepo

type AnnouncementRepo = announce.AnnouncementRepo

var NewUserRepo = user.NewUserRepo
var NewOrganizationRepo = org.NewOrganizationRepo
var NewMemberRepo = org.NewMemberRepo
var NewLeadRepo = org.NewLeadRepo
var NewPlanRepo = billing.NewPlanRepo
var NewSubscriptionRepo = billing.NewSubscriptionRepo
var NewInvoiceRepo = billing.NewInvoiceRepo
var NewAnnouncementRepo = announce.NewAnnouncementRepo
