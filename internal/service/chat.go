package service

import (
	"context"
	"strings"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/model"
	"findjob-backend/internal/policy"
	"findjob-backend/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatService stores messages between two identities.
type ChatService struct{ Deps }

// ChatInput is the body of POST /chat-messages.
type ChatInput struct {
	ReceiverID uuid.UUID `json:"receiver_id" validate:"required"`
	JobID      *uint     `json:"job_id"`
	Message    string    `json:"message" validate:"notblank,max=2000"`
}

// Send stores a message from the caller.
func (s *ChatService) Send(ctx context.Context, caller *model.User, in ChatInput) (model.ChatMessage, error) {
	if err := requireUser(caller); err != nil {
		return model.ChatMessage{}, err
	}
	if err := validation.Struct(&in); err != nil {
		return model.ChatMessage{}, err
	}
	if in.ReceiverID == caller.ID {
		return model.ChatMessage{}, apperror.Invalid("receiver_id", "cannot send a message to yourself")
	}

	msg := model.ChatMessage{
		SenderID:   caller.ID,
		ReceiverID: in.ReceiverID,
		JobID:      in.JobID,
		Message:    strings.TrimSpace(in.Message),
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, &model.User{}, "id = ?", in.ReceiverID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Invalid("receiver_id", "receiver does not exist")
		}
		if in.JobID != nil {
			ok, err := exists(tx, &model.Job{}, "id = ?", *in.JobID)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.Invalid("job_id", "job does not exist")
			}
		}
		return tx.Create(&msg).Error
	})
	if err != nil {
		return model.ChatMessage{}, err
	}
	return msg, nil
}

// List return messages the caller sent or received, oldest first.
// A non-nil with narrows the list to the conversation with that identity.
func (s *ChatService) List(ctx context.Context, caller *model.User, with *uuid.UUID) ([]model.ChatMessage, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Model(&model.ChatMessage{})
	if with != nil {
		q = q.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			caller.ID, *with, *with, caller.ID)
	} else {
		q = q.Where("sender_id = ? OR receiver_id = ?", caller.ID, caller.ID)
	}
	msgs := []model.ChatMessage{}
	if err := q.Order("timestamp ASC").Order("id ASC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead flags a received message as read.
func (s *ChatService) MarkRead(ctx context.Context, caller *model.User, id uint) (model.ChatMessage, error) {
	if err := requireUser(caller); err != nil {
		return model.ChatMessage{}, err
	}
	var msg model.ChatMessage
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&msg, id).Error; err != nil {
			return notFound(err)
		}
		if !s.Authz.Allow(caller, policy.ActionRead, &msg) {
			return apperror.ErrNotFound
		}
		if err := s.Authz.Authorize(caller, policy.ActionUpdate, &msg); err != nil {
			return err
		}
		if msg.IsRead {
			return nil
		}
		msg.IsRead = true
		return tx.Model(&model.ChatMessage{}).Where("id = ?", msg.ID).Update("is_read", true).Error
	})
	if err != nil {
		return model.ChatMessage{}, err
	}
	return msg, nil
}
