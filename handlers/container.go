package handlers

import (
	"github.com/safetrack/ehs-platform/services"
	"github.com/safetrack/ehs-platform/websocket"
)

type Handlers struct {
	Audit          *AuditHandler
	Auth           *AuthHandler
	Billing        *BillingHandler
	Member         *MemberHandler
	Navigation     *NavigationHandler
	Report         *ReportHandler
	Submission     *SubmissionHandler
	SystemTemplate *SystemTemplateHandler
	Template       *TemplateHandler
	User           *UserHandler
}

func New(svc *services.Services, hub *websocket.Hub) *Handlers {
	return &Handlers{
		Audit:          NewAuditHandler(svc.Audit),
		Auth:           NewAuthHandler(svc.User),
		Billing:        NewBillingHandler(svc.Billing),
		Member:         NewMemberHandler(svc.Member),
		Navigation:     NewNavigationHandler(),
		Report:         NewReportHandler(svc.Report),
		Submission:     NewSubmissionHandler(svc.Submission, hub),
		SystemTemplate: NewSystemTemplateHandler(svc.Catalog),
		Template:       NewTemplateHandler(svc.Template),
		User:           NewUserHandler(svc.User),
	}
}
