package services

import (
	"github.com/safetrack/ehs-platform/email"
	"github.com/safetrack/ehs-platform/repositories"
)

type Services struct {
	Audit      *AuditService
	Billing    *BillingService
	Catalog    *CatalogService
	Member     *MemberService
	Report     *ReportService
	Submission *SubmissionService
	Template   *TemplateService
	User       *UserService
}

func New(repos *repositories.Repos) *Services {
	mailer := email.NewClient()
	return &Services{
		Audit:      NewAuditService(repos),
		Billing:    NewBillingService(repos),
		Catalog:    NewCatalogService(repos),
		Member:     NewMemberService(repos, mailer),
		Report:     NewReportService(repos),
		Submission: NewSubmissionService(repos),
		Template:   NewTemplateService(repos),
		User:       NewUserService(repos),
	}
}
