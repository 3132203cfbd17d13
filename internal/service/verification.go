package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/model"
	"findjob-backend/internal/notify"
	"findjob-backend/internal/policy"
	"findjob-backend/internal/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerificationService handles employer document review.
type VerificationService struct{ Deps }

// VerificationInput is the body of POST /verifications.
type VerificationInput struct {
	DocumentLink string `json:"document_link" validate:"required,url,max=500"`
}

// DecisionInput is the optional body of the approve and reject endpoints.
type DecisionInput struct {
	AdminNote string `json:"admin_note" validate:"max=1000,safe_html"`
}

// Submit files a verification request for the calling employer.
func (s *VerificationService) Submit(ctx context.Context, caller *model.User, in VerificationInput) (model.Verification, error) {
	if err := requireUser(caller); err != nil {
		return model.Verification{}, err
	}
	employerID, ok := caller.EmployerID()
	if !ok {
		return model.Verification{}, apperror.ErrForbidden
	}
	in.DocumentLink = strings.TrimSpace(in.DocumentLink)
	if err := validation.Struct(&in); err != nil {
		return model.Verification{}, err
	}

	v := model.Verification{
		EmployerID:   employerID,
		DocumentLink: in.DocumentLink,
		Status:       model.VerificationPending,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pending, err := exists(tx, &model.Verification{}, "employer_id = ? AND status = ?", employerID, model.VerificationPending)
		if err != nil {
			return err
		}
		if pending {
			return apperror.Invalid("document_link", "a verification request is already pending")
		}
		return tx.Omit(clause.Associations).Create(&v).Error
	})
	if err != nil {
		return model.Verification{}, err
	}
	return v, nil
}

// List return every request for administrators and the caller's own for employers.
func (s *VerificationService) List(ctx context.Context, caller *model.User, status string) ([]model.Verification, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Model(&model.Verification{})
	if !caller.IsAdmin() {
		employerID, ok := caller.EmployerID()
		if !ok {
			return nil, apperror.ErrForbidden
		}
		q = q.Where("employer_id = ?", employerID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	out := []model.Verification{}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Approve marks the request approved and the employer verified.
func (s *VerificationService) Approve(ctx context.Context, caller *model.User, id uint, in DecisionInput) (model.Verification, error) {
	return s.decide(ctx, caller, id, model.VerificationApproved, in)
}

// Reject marks the request rejected.
func (s *VerificationService) Reject(ctx context.Context, caller *model.User, id uint, in DecisionInput) (model.Verification, error) {
	return s.decide(ctx, caller, id, model.VerificationRejected, in)
}

func (s *VerificationService) decide(ctx context.Context, caller *model.User, id uint, status string, in DecisionInput) (model.Verification, error) {
	if err := requireUser(caller); err != nil {
		return model.Verification{}, err
	}
	if err := validation.Struct(&in); err != nil {
		return model.Verification{}, err
	}

	var v model.Verification
	err := s.transact(ctx, func(tx *gorm.DB, out *notify.Outbox) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, id).Error; err != nil {
			return notFound(err)
		}
		if err := s.Authz.Authorize(caller, policy.ActionDecide, &v); err != nil {
			return err
		}
		if v.Status == status {
			return nil
		}
		if v.Status != model.VerificationPending {
			return apperror.Invalid("status", fmt.Sprintf("verification is already %s", v.Status))
		}

		now := time.Now()
		v.Status = status
		v.AdminNote = strings.TrimSpace(in.AdminNote)
		v.VerifiedAt = &now
		if err := tx.Model(&model.Verification{}).Where("id = ?", v.ID).Updates(map[string]any{
			"status":      v.Status,
			"admin_note":  v.AdminNote,
			"verified_at": v.VerifiedAt,
		}).Error; err != nil {
			return err
		}
		if status == model.VerificationApproved {
			if err := tx.Model(&model.Employer{}).Where("id = ?", v.EmployerID).Update("verified", true).Error; err != nil {
				return err
			}
		}

		var employer model.Employer
		if err := tx.Preload("User").First(&employer, v.EmployerID).Error; err != nil {
			return err
		}
		if employer.User == nil {
			return nil
		}
		return out.Notify(tx, employer.User, notify.Message{
			Subject: "Verification Update",
			Body:    fmt.Sprintf("Your verification request has been %s.", status),
			Email:   true,
		})
	})
	if err != nil {
		return model.Verification{}, err
	}
	return v, nil
}
