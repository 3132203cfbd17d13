package service

import (
	"context"
	"fmt"
	"strings"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/model"
	"findjob-backend/internal/notify"
	"findjob-backend/internal/storage"
	"findjob-backend/internal/utilities"
	"findjob-backend/internal/validation"

	"gorm.io/gorm"
)

// UserService registers identities and lets them manage themselves.
type UserService struct{ Deps }

// credentials are the identity fields shared by every registration.
type credentials struct {
	Username, Password, Email, FirstName, LastName string
}

// RegisterEmployerInput is the body of POST /users/register-employer.
type RegisterEmployerInput struct {
	Username  string `json:"username" validate:"required,min=5,nospace,noemoji,username"`
	Password  string `json:"password" validate:"required,min=6,nospace,noemoji"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`

	Name        string             `json:"name" validate:"notblank,max=255"`
	TaxCode     string             `json:"tax_code" validate:"max=50"`
	Location    string             `json:"location" validate:"max=255"`
	Coordinates *model.Coordinates `json:"coordinates"`
}

// RegisterCandidateInput is the body of POST /users/register-candidate.
type RegisterCandidateInput struct {
	Username  string `json:"username" validate:"required,min=5,nospace,noemoji,username"`
	Password  string `json:"password" validate:"required,min=6,nospace,noemoji"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`

	Name   string `json:"name" validate:"notblank,max=255"`
	CVLink string `json:"cv_link" validate:"omitempty,cvlink"`
}

// UpdateSelfInput is the body of PATCH /users/current-user. Nil fields are left unchanged.
type UpdateSelfInput struct {
	FirstName         *string `json:"first_name" validate:"omitempty,max=150"`
	LastName          *string `json:"last_name" validate:"omitempty,max=150"`
	Password          *string `json:"password" validate:"omitempty,min=6,nospace,noemoji"`
	EmailNotification *bool   `json:"email_notification"`
}

// SendEmailInput is the optional body of POST /users/send-email.
type SendEmailInput struct {
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"max=2000"`
}

var userUniqueFields = map[string]string{
	"username": "username",
	"email":    "email",
}

// RegisterEmployer creates an employer identity and its profile atomically.
func (s *UserService) RegisterEmployer(ctx context.Context, in RegisterEmployerInput) (model.User, error) {
	if err := validation.Struct(&in); err != nil {
		return model.User{}, err
	}
	employer := &model.Employer{EditableEmployerInfo: model.EditableEmployerInfo{
		Name:        strings.TrimSpace(in.Name),
		TaxCode:     strings.TrimSpace(in.TaxCode),
		Location:    strings.TrimSpace(in.Location),
		Coordinates: in.Coordinates,
	}}
	return s.register(ctx, credentials{in.Username, in.Password, in.Email, in.FirstName, in.LastName}, model.EmployerProfile{Employer: employer})
}

// RegisterCandidate creates a candidate identity and its profile atomically.
func (s *UserService) RegisterCandidate(ctx context.Context, in RegisterCandidateInput) (model.User, error) {
	if err := validation.Struct(&in); err != nil {
		return model.User{}, err
	}
	candidate := &model.Candidate{EditableCandidateInfo: model.EditableCandidateInfo{
		Name:   strings.TrimSpace(in.Name),
		CVLink: strings.TrimSpace(in.CVLink),
	}}
	return s.register(ctx, credentials{in.Username, in.Password, in.Email, in.FirstName, in.LastName}, model.CandidateProfile{Candidate: candidate})
}

func (s *UserService) register(ctx context.Context, cred credentials, profile model.Profile) (model.User, error) {
	hashed, err := utilities.HashPassword(cred.Password)
	if err != nil {
		return model.User{}, err
	}
	email := strings.ToLower(strings.TrimSpace(cred.Email))
	user := model.NewUser(cred.Username, &email, hashed, profile)
	user.FirstName = strings.TrimSpace(cred.FirstName)
	user.LastName = strings.TrimSpace(cred.LastName)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ve := &apperror.ValidationError{}
		if taken, err := exists(tx, &model.User{}, "username = ?", user.Username); err != nil {
			return err
		} else if taken {
			ve.Add("username", "already exists")
		}
		if taken, err := exists(tx, &model.User{}, "email = ?", email); err != nil {
			return err
		} else if taken {
			ve.Add("email", "already exists")
		}
		if err := ve.OrNil(); err != nil {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return model.User{}, uniqueViolation(err, userUniqueFields, "username")
	}
	return user, nil
}

// Current reloads the caller with its profile.
func (s *UserService) Current(ctx context.Context, caller *model.User) (model.User, error) {
	if err := requireUser(caller); err != nil {
		return model.User{}, err
	}
	return s.load(ctx, s.DB.DB, caller.ID.String())
}

// UpdateSelf changes the caller's names, password or email preference.
func (s *UserService) UpdateSelf(ctx context.Context, caller *model.User, in UpdateSelfInput) (model.User, error) {
	if err := requireUser(caller); err != nil {
		return model.User{}, err
	}
	if err := validation.Struct(&in); err != nil {
		return model.User{}, err
	}

	updates := map[string]any{}
	if in.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.EmailNotification != nil {
		updates["email_notification"] = *in.EmailNotification
	}
	if in.Password != nil {
		hashed, err := utilities.HashPassword(*in.Password)
		if err != nil {
			return model.User{}, err
		}
		updates["password"] = hashed
	}

	var out model.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&model.User{}).Where("id = ?", caller.ID).Updates(updates).Error; err != nil {
				return err
			}
		}
		var err error
		out, err = s.load(ctx, tx, caller.ID.String())
		return err
	})
	return out, err
}

// SendEmail records an email notification for the caller and queues the email.
// It fails when the caller has email notifications turned off.
func (s *UserService) SendEmail(ctx context.Context, caller *model.User, in SendEmailInput) error {
	if err := requireUser(caller); err != nil {
		return err
	}
	if err := validation.Struct(&in); err != nil {
		return err
	}
	if !caller.EmailNotification {
		return apperror.Invalid("email_notification", "email notifications are disabled")
	}
	if caller.EmailAddress() == "" {
		return apperror.Invalid("email", "no email address on file")
	}

	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		subject = "Job Application Update"
	}
	body := strings.TrimSpace(in.Message)
	if body == "" {
		body = fmt.Sprintf("Hello %s, your application status has been updated.", caller.Username)
	}

	return s.transact(ctx, func(tx *gorm.DB, out *notify.Outbox) error {
		return out.Notify(tx, caller, notify.Message{
			Kind:    model.NotificationTypeEmail,
			Subject: subject,
			Body:    body,
			Email:   true,
		})
	})
}

// SetAvatar stores image bytes as the caller's avatar.
func (s *UserService) SetAvatar(ctx context.Context, caller *model.User, data []byte, extension string) (model.User, error) {
	if err := requireUser(caller); err != nil {
		return model.User{}, err
	}
	file := model.File{}
	if err := s.Store.Persist(ctx, &file, data, extension, storage.AvatarPrefix); err != nil {
		return model.User{}, fmt.Errorf("store avatar: %w", err)
	}

	var out model.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.User{}).Where("id = ?", caller.ID).Update("avatar_id", file.ID).Error; err != nil {
			return err
		}
		if caller.AvatarID != nil {
			if err := tx.Delete(&model.File{}, *caller.AvatarID).Error; err != nil {
				return err
			}
		}
		var err error
		out, err = s.load(ctx, tx, caller.ID.String())
		return err
	})
	return out, err
}

func (s *UserService) load(ctx context.Context, db *gorm.DB, id string) (model.User, error) {
	var user model.User
	if err := db.WithContext(ctx).
		Preload("Employer").
		Preload("Employer.Images").
		Preload("Candidate").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return model.User{}, notFound(err)
	}
	return user, nil
}

func exists(tx *gorm.DB, m any, query string, args ...any) (bool, error) {
	var count int64
	if err := tx.Model(m).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
