package notify

import (
	"fmt"

	"findjob-backend/internal/metrics"
	"findjob-backend/internal/model"

	"gorm.io/gorm"
)

// Enqueuer accepts emails for asynchronous delivery.
type Enqueuer interface {
	Enqueue(e Email) bool
}

// Notifier creates outboxes bound to one email queue.
type Notifier struct {
	queue Enqueuer
}

// NewNotifier return a Notifier delivering through queue.
func NewNotifier(queue Enqueuer) *Notifier {
	return &Notifier{queue: queue}
}

// NewOutbox starts collecting notifications for one unit of work.
// A nil Notifier yields an outbox that records notifications but sends no email.
func (n *Notifier) NewOutbox() *Outbox {
	if n == nil {
		return &Outbox{}
	}
	return &Outbox{queue: n.queue}
}

// Outbox persists notifications within a transaction and holds their emails
// until Flush is called after commit.
type Outbox struct {
	queue   Enqueuer
	pending []Email
}

// Message is one notification to record.
type Message struct {
	Kind    string
	Subject string
	Body    string
	// Email requests an email copy. It is only sent when the recipient has
	// an address and email notifications enabled.
	Email bool
}

// Notify records msg for recipient using tx.
func (o *Outbox) Notify(tx *gorm.DB, recipient *model.User, msg Message) error {
	kind := msg.Kind
	if kind == "" {
		kind = model.NotificationTypeSystem
	}
	n := model.Notification{
		UserID:  recipient.ID,
		Message: msg.Body,
		Type:    kind,
	}
	if err := tx.Create(&n).Error; err != nil {
		return fmt.Errorf("record notification: %w", err)
	}
	metrics.NotificationsCreatedTotal.WithLabelValues(kind).Inc()

	if msg.Email {
		o.hold(recipient, msg)
	}
	return nil
}

func (o *Outbox) hold(recipient *model.User, msg Message) {
	to := recipient.EmailAddress()
	if to == "" || !recipient.EmailNotification {
		return
	}
	o.pending = append(o.pending, Email{To: to, Subject: msg.Subject, Body: msg.Body})
}

// Pending return the number of emails waiting for Flush.
func (o *Outbox) Pending() int {
	return len(o.pending)
}

// Flush enqueues held emails. Call it only after the transaction committed.
func (o *Outbox) Flush() {
	if o.queue == nil {
		o.pending = nil
		return
	}
	for _, e := range o.pending {
		o.queue.Enqueue(e)
	}
	o.pending = nil
}
