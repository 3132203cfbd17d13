package service

import (
	"context"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/model"
	"findjob-backend/internal/policy"

	"gorm.io/gorm"
)

// NotificationService exposes the caller's in-app notifications.
type NotificationService struct{ Deps }

// List return the caller's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, caller *model.User, unreadOnly bool) ([]model.Notification, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Where("user_id = ?", caller.ID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	notifications := []model.Notification{}
	if err := q.Order("created_date DESC").Order("id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, caller *model.User, id uint) (model.Notification, error) {
	if err := requireUser(caller); err != nil {
		return model.Notification{}, err
	}
	var n model.Notification
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&n, id).Error; err != nil {
			return notFound(err)
		}
		if !s.Authz.Allow(caller, policy.ActionUpdate, &n) {
			return apperror.ErrNotFound
		}
		if n.IsRead {
			return nil
		}
		n.IsRead = true
		return tx.Model(&model.Notification{}).Where("id = ?", n.ID).Update("is_read", true).Error
	})
	if err != nil {
		return model.Notification{}, err
	}
	return n, nil
}
