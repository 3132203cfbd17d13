package service

import (
	"context"
	"strings"

	"findjob-backend/internal/model"
	"findjob-backend/internal/policy"
	"findjob-backend/internal/validation"

	"gorm.io/gorm"
)

// CandidateService reads and edits candidate profiles.
type CandidateService struct{ Deps }

// UpdateCandidateInput is the body of PATCH /candidates/{id}. Nil fields are left unchanged.
type UpdateCandidateInput struct {
	Name   *string `json:"name" validate:"omitempty,notblank,max=255"`
	CVLink *string `json:"cv_link" validate:"omitempty,cvlink"`
}

// Get return one candidate profile.
func (s *CandidateService) Get(ctx context.Context, id uint) (model.Candidate, error) {
	var candidate model.Candidate
	if err := s.DB.WithContext(ctx).First(&candidate, id).Error; err != nil {
		return model.Candidate{}, notFound(err)
	}
	return candidate, nil
}

// Update edits a candidate profile on behalf of its owner or an administrator.
func (s *CandidateService) Update(ctx context.Context, caller *model.User, id uint, in UpdateCandidateInput) (model.Candidate, error) {
	if err := requireUser(caller); err != nil {
		return model.Candidate{}, err
	}
	if err := validation.Struct(&in); err != nil {
		return model.Candidate{}, err
	}

	var out model.Candidate
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidate model.Candidate
		if err := tx.First(&candidate, id).Error; err != nil {
			return notFound(err)
		}
		if err := s.Authz.Authorize(caller, policy.ActionUpdate, &candidate); err != nil {
			return err
		}
		if in.Name != nil {
			candidate.Name = strings.TrimSpace(*in.Name)
		}
		if in.CVLink != nil {
			candidate.CVLink = strings.TrimSpace(*in.CVLink)
		}
		if err := tx.Model(&model.Candidate{}).Where("id = ?", candidate.ID).Updates(map[string]any{
			"name":    candidate.Name,
			"cv_link": candidate.CVLink,
		}).Error; err != nil {
			return err
		}
		out = candidate
		return nil
	})
	return out, err
}
