package testutil

import (
	"sync"

	"findjob-backend/internal/database"
	"findjob-backend/internal/notify"
	"findjob-backend/internal/policy"
	"findjob-backend/internal/service"
	"findjob-backend/internal/storage"
)

// MapsAPIKey is the key test services put in map data responses.
const MapsAPIKey = "test-maps-key"

// RecordingQueue collects enqueued emails instead of sending them.
type RecordingQueue struct {
	mu     sync.Mutex
	Emails []notify.Email
}

// Enqueue implements notify.Enqueuer.
func (q *RecordingQueue) Enqueue(e notify.Email) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Emails = append(q.Emails, e)
	return true
}

// SentTo counts emails queued for addr.
func (q *RecordingQueue) SentTo(addr string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, e := range q.Emails {
		if e.To == addr {
			n++
		}
	}
	return n
}

// NewServices wires services to db with files kept in the database.
func NewServices(db *database.DBinstanceStruct) (*service.Services, *RecordingQueue) {
	queue := &RecordingQueue{}
	return service.New(service.Deps{
		DB:         db,
		Authz:      policy.NewAuthorizer(),
		Notifier:   notify.NewNotifier(queue),
		Store:      storage.NewStore(nil),
		MapsAPIKey: MapsAPIKey,
	}), queue
}
