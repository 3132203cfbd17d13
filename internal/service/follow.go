package service

import (
	"context"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/model"
	"findjob-backend/internal/utilities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowService subscribes candidates to employers.
type FollowService struct{ Deps }

// FollowInput is the optional body of POST /employers/{id}/follow.
type FollowInput struct {
	NotifyEmail *bool `json:"notify_email"`
}

// Follow subscribes the calling candidate to an employer. Following twice
// updates the email preference.
func (s *FollowService) Follow(ctx context.Context, caller *model.User, employerID uint, in FollowInput) (model.Follow, error) {
	if err := requireUser(caller); err != nil {
		return model.Follow{}, err
	}
	candidateID, ok := caller.CandidateID()
	if !ok {
		return model.Follow{}, apperror.ErrForbidden
	}
	follow := model.Follow{
		CandidateID: candidateID,
		EmployerID:  employerID,
		NotifyEmail: true,
	}
	if in.NotifyEmail != nil {
		follow.NotifyEmail = *in.NotifyEmail
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &model.Employer{}, "id = ?", employerID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.ErrNotFound
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "candidate_id"}, {Name: "employer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"notify_email"}),
		}).Create(&follow).Error; err != nil {
			// employer deleted between the check and the insert
			if utilities.IsForeignKeyViolation(err) {
				return apperror.ErrNotFound
			}
			return err
		}
		return tx.Where("candidate_id = ? AND employer_id = ?", candidateID, employerID).First(&follow).Error
	})
	if err != nil {
		return model.Follow{}, err
	}
	return follow, nil
}

// Unfollow removes the calling candidate's subscription.
func (s *FollowService) Unfollow(ctx context.Context, caller *model.User, employerID uint) error {
	if err := requireUser(caller); err != nil {
		return err
	}
	candidateID, ok := caller.CandidateID()
	if !ok {
		return apperror.ErrForbidden
	}
	res := s.DB.WithContext(ctx).
		Where("candidate_id = ? AND employer_id = ?", candidateID, employerID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

// Following return the employers the calling candidate follows.
func (s *FollowService) Following(ctx context.Context, caller *model.User) ([]model.Follow, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	candidateID, ok := caller.CandidateID()
	if !ok {
		return nil, apperror.ErrForbidden
	}
	follows := []model.Follow{}
	if err := s.DB.WithContext(ctx).Where("candidate_id = ?", candidateID).Order("id ASC").Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}
