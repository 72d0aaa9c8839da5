package repositories

import (
	"gorm.io/gorm"
)

type Repos struct {
	User           UserRepo
	Organization   OrganizationRepo
	Member         MemberRepo
	Template       TemplateRepo
	Submission     SubmissionRepo
	Draft          DraftRepo
	SystemTemplate SystemTemplateRepo
	Audit          AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		User:           NewUserRepo(db),
		Organization:   NewOrganizationRepo(db),
		Member:         NewMemberRepo(db),
		Template:       NewTemplateRepo(db),
		Submission:     NewSubmissionRepo(db),
		Draft:          NewDraftRepo(db),
		SystemTemplate: NewSystemTemplateRepo(db),
		Audit:          NewAuditRepo(db),
		db:             db,
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		User:           r.User.WithTx(tx),
		Organization:   r.Organization.WithTx(tx),
		Member:         r.Member.WithTx(tx),
		Template:       r.Template.WithTx(tx),
		Submission:     r.Submission.WithTx(tx),
		Draft:          r.Draft.WithTx(tx),
		SystemTemplate: r.SystemTemplate.WithTx(tx),
		Audit:          r.Audit.WithTx(tx),
		db:             tx,
	}
}

// ExecTx runs fn with every repo bound to one transaction. Without a
// backing connection the callback runs untransacted against r itself.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
