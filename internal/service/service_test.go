package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/database"
	"findjob-backend/internal/model"
	"findjob-backend/internal/notify"
	"findjob-backend/internal/policy"
	"findjob-backend/internal/storage"

	"github.com/stretchr/testify/require"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	testTeardown, db, err := database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}
	testDB = db

	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
	os.Exit(code)
}

// recordingQueue collects enqueued emails instead of sending them.
type recordingQueue struct {
	mu     sync.Mutex
	emails []notify.Email
}

func (q *recordingQueue) Enqueue(e notify.Email) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.emails = append(q.emails, e)
	return true
}

func (q *recordingQueue) sentTo(addr string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, e := range q.emails {
		if e.To == addr {
			n++
		}
	}
	return n
}

func newTestServices(t *testing.T) (*Services, *recordingQueue) {
	t.Helper()
	queue := &recordingQueue{}
	return New(Deps{
		DB:         testDB,
		Authz:      policy.NewAuthorizer(),
		Notifier:   notify.NewNotifier(queue),
		Store:      storage.NewStore(nil),
		MapsAPIKey: "test-maps-key",
	}), queue
}

var seq atomic.Int64

// unique return a name unlikely to collide across tests sharing the database.
func unique(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().UnixNano()%1_000_000, seq.Add(1))
}

// newEmployer registers a fresh employer identity.
func newEmployer(t *testing.T, s *Services) model.User {
	t.Helper()
	name := unique("emp")
	u, err := s.Users.RegisterEmployer(context.Background(), RegisterEmployerInput{
		Username: name,
		Password: "secret123",
		Email:    name + "@example.com",
		Name:     "Employer " + name,
		Location: "Da Nang",
	})
	require.NoError(t, err)
	return u
}

// newCandidate registers a fresh candidate identity.
func newCandidate(t *testing.T, s *Services) model.User {
	t.Helper()
	name := unique("cand")
	u, err := s.Users.RegisterCandidate(context.Background(), RegisterCandidateInput{
		Username: name,
		Password: "secret123",
		Email:    name + "@example.com",
		Name:     "Candidate " + name,
		CVLink:   "https://example.com/cv/" + name + ".pdf",
	})
	require.NoError(t, err)
	return u
}

func jobInput(title string) JobInput {
	return JobInput{EditableJobInfo: model.EditableJobInfo{
		Title:      title,
		Salary:     "30000 VND/h",
		Location:   "Ho Chi Minh City",
		WorkHours:  4,
		CategoryID: database.TestCategory.ID,
	}}
}

// newActiveJob creates a posting for owner and publishes it.
func newActiveJob(t *testing.T, s *Services, owner *model.User) model.Job {
	t.Helper()
	ctx := context.Background()
	job, err := s.Jobs.Create(ctx, owner, jobInput(unique("Job")))
	require.NoError(t, err)
	job, err = s.Jobs.SetStatus(ctx, owner, job.ID, model.JobStatusActive)
	require.NoError(t, err)
	return job
}

func countNotifications(t *testing.T, user *model.User) int64 {
	t.Helper()
	var n int64
	require.NoError(t, testDB.Model(&model.Notification{}).Where("user_id = ?", user.ID).Count(&n).Error)
	return n
}

func requireField(t *testing.T, err error, field string) {
	t.Helper()
	ve, ok := apperror.AsValidation(err)
	require.True(t, ok, "expected validation error, got %v", err)
	require.True(t, ve.Has(field), "expected violation on %s, got %v", field, ve.Fields)
}
