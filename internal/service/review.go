package service

import (
	"context"
	"errors"
	"strings"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/model"
	"findjob-backend/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewService records ratings between identities after completed postings.
type ReviewService struct{ Deps }

// ReviewInput is the body of POST /reviews.
type ReviewInput struct {
	RevieweeID uuid.UUID `json:"reviewee_id" validate:"required"`
	JobID      uint      `json:"job_id" validate:"required"`
	Rating     int       `json:"rating" validate:"gte=1,lte=5"`
	Comment    string    `json:"comment" validate:"notblank,max=1000,safe_html"`
}

var reviewUniqueFields = map[string]string{
	"idx_review_triple": "job_id",
}

// Create stores a review and recomputes the reviewee's average rating in the
// same transaction.
func (s *ReviewService) Create(ctx context.Context, caller *model.User, in ReviewInput) (model.Review, error) {
	if err := requireUser(caller); err != nil {
		return model.Review{}, err
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if err := validation.Struct(&in); err != nil {
		return model.Review{}, err
	}
	if in.RevieweeID == caller.ID {
		return model.Review{}, apperror.Invalid("reviewee_id", "cannot review yourself")
	}

	review := model.Review{
		ReviewerID: caller.ID,
		RevieweeID: in.RevieweeID,
		JobID:      in.JobID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var job model.Job
		if err := tx.First(&job, in.JobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Invalid("job_id", "job does not exist")
			}
			return err
		}
		if job.Status != model.JobStatusCompleted {
			return apperror.Invalid("job_id", "reviews are only allowed for completed jobs")
		}

		var reviewee model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&reviewee, "id = ?", in.RevieweeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Invalid("reviewee_id", "user does not exist")
			}
			return err
		}

		dup, err := exists(tx, &model.Review{}, "reviewer_id = ? AND reviewee_id = ? AND job_id = ?",
			caller.ID, in.RevieweeID, in.JobID)
		if err != nil {
			return err
		}
		if dup {
			return apperror.Invalid("job_id", "you have already reviewed this user for this job")
		}

		if err := tx.Omit(clause.Associations).Create(&review).Error; err != nil {
			return err
		}

		var avg float64
		if err := tx.Model(&model.Review{}).
			Select("COALESCE(AVG(rating), 0)").
			Where("reviewee_id = ?", in.RevieweeID).
			Scan(&avg).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("id = ?", in.RevieweeID).Update("average_rating", avg).Error
	})
	if err != nil {
		return model.Review{}, uniqueViolation(err, reviewUniqueFields, "job_id")
	}
	return review, nil
}

// ListFor return reviews received by one identity, newest first.
func (s *ReviewService) ListFor(ctx context.Context, userID uuid.UUID) ([]model.Review, error) {
	reviews := []model.Review{}
	if err := s.DB.WithContext(ctx).
		Where("reviewee_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
