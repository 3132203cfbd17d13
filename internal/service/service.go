// Package service holds the job board use cases. Every service authorizes the
// caller with the injected policy.Authorizer, runs multi-step mutations in one
// database transaction and hands notifications to the outbox, which only emails
// after commit.
package service

import (
	"context"
	"errors"
	"strings"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/database"
	"findjob-backend/internal/model"
	"findjob-backend/internal/notify"
	"findjob-backend/internal/policy"
	"findjob-backend/internal/storage"
	"findjob-backend/internal/utilities"

	"gorm.io/gorm"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	DB         *database.DBinstanceStruct
	Authz      *policy.Authorizer
	Notifier   *notify.Notifier
	Store      *storage.Store
	MapsAPIKey string
}

// Services bundles one instance of each service.
type Services struct {
	Users         *UserService
	Employers     *EmployerService
	Candidates    *CandidateService
	Categories    *CategoryService
	Jobs          *JobService
	Applications  *ApplicationService
	Schedules     *ScheduleService
	Chat          *ChatService
	Reviews       *ReviewService
	Notifications *NotificationService
	Follows       *FollowService
	Verifications *VerificationService
	Stats         *StatsService
	Files         *FileService
}

// New wires every service to d.
func New(d Deps) *Services {
	return &Services{
		Users:         &UserService{d},
		Employers:     &EmployerService{d},
		Candidates:    &CandidateService{d},
		Categories:    &CategoryService{d},
		Jobs:          &JobService{d},
		Applications:  &ApplicationService{d},
		Schedules:     &ScheduleService{d},
		Chat:          &ChatService{d},
		Reviews:       &ReviewService{d},
		Notifications: &NotificationService{d},
		Follows:       &FollowService{d},
		Verifications: &VerificationService{d},
		Stats:         &StatsService{d},
		Files:         &FileService{d},
	}
}

// transact runs fn in a transaction and flushes the outbox once it commits.
func (d Deps) transact(ctx context.Context, fn func(tx *gorm.DB, out *notify.Outbox) error) error {
	out := d.Notifier.NewOutbox()
	if err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, out)
	}); err != nil {
		return err
	}
	out.Flush()
	return nil
}

// notFound turns gorm.ErrRecordNotFound into apperror.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}

// uniqueViolation converts a 23505 error into a ValidationError on the field
// named by the violated index. Other errors pass through.
func uniqueViolation(err error, fields map[string]string, fallback string) error {
	if !utilities.IsUniqueViolation(err) {
		return err
	}
	constraint := utilities.ViolatedConstraint(err)
	for key, field := range fields {
		if strings.Contains(constraint, key) {
			return apperror.Invalid(field, "already exists")
		}
	}
	return apperror.Invalid(fallback, "already exists")
}

func requireUser(caller *model.User) error {
	if caller == nil {
		return apperror.ErrUnauthenticated
	}
	return nil
}
