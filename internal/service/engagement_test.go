package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/database"
	"findjob-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedJob(t *testing.T, s *Services, owner *model.User) model.Job {
	t.Helper()
	job := newActiveJob(t, s, owner)
	job, err := s.Jobs.SetStatus(context.Background(), owner, job.ID, model.JobStatusCompleted)
	require.NoError(t, err)
	return job
}

func TestReview_RecomputesAverage(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	owner := newEmployer(t, s)
	c1 := newCandidate(t, s)
	c2 := newCandidate(t, s)
	job := completedJob(t, s, &owner)

	_, err := s.Reviews.Create(ctx, &c1, ReviewInput{RevieweeID: owner.ID, JobID: job.ID, Rating: 5, Comment: "  Great boss  "})
	require.NoError(t, err)
	r, err := s.Reviews.Create(ctx, &c2, ReviewInput{RevieweeID: owner.ID, JobID: job.ID, Rating: 2, Comment: "Late pay"})
	require.NoError(t, err)
	assert.Equal(t, "Late pay", r.Comment)

	var stored model.User
	require.NoError(t, testDB.Where("id = ?", owner.ID).First(&stored).Error)
	assert.InDelta(t, 3.5, stored.AverageRating, 1e-9)

	reviews, err := s.Reviews.ListFor(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	_, err = s.Reviews.Create(ctx, &c1, ReviewInput{RevieweeID: owner.ID, JobID: job.ID, Rating: 4, Comment: "Again"})
	requireField(t, err, "job_id")
}

func TestReview_Validation(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	owner := newEmployer(t, s)
	cand := newCandidate(t, s)
	done := completedJob(t, s, &owner)
	active := newActiveJob(t, s, &owner)

	_, err := s.Reviews.Create(ctx, &cand, ReviewInput{RevieweeID: owner.ID, JobID: active.ID, Rating: 4, Comment: "ok"})
	requireField(t, err, "job_id")

	_, err = s.Reviews.Create(ctx, &cand, ReviewInput{RevieweeID: cand.ID, JobID: done.ID, Rating: 4, Comment: "me"})
	requireField(t, err, "reviewee_id")

	_, err = s.Reviews.Create(ctx, &cand, ReviewInput{RevieweeID: owner.ID, JobID: done.ID, Rating: 6, Comment: "   "})
	requireField(t, err, "rating")
	requireField(t, err, "comment")

	_, err = s.Reviews.Create(ctx, &cand, ReviewInput{RevieweeID: owner.ID, JobID: done.ID, Rating: 3, Comment: "<script>alert(1)</script>"})
	requireField(t, err, "comment")

	_, err = s.Reviews.Create(ctx, &cand, ReviewInput{RevieweeID: owner.ID, JobID: done.ID, Rating: 3, Comment: strings.Repeat("a", 1001)})
	requireField(t, err, "comment")

	_, err = s.Reviews.Create(ctx, &cand, ReviewInput{RevieweeID: uuid.New(), JobID: done.ID, Rating: 3, Comment: "ghost"})
	requireField(t, err, "reviewee_id")
}

func TestChat_SendListRead(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	a := newCandidate(t, s)
	b := newEmployer(t, s)
	c := newCandidate(t, s)

	msg, err := s.Chat.Send(ctx, &a, ChatInput{ReceiverID: b.ID, Message: " hello "})
	require.NoError(t, err)
	assert.Equal(t, a.ID, msg.SenderID)
	assert.Equal(t, "hello", msg.Message)
	_, err = s.Chat.Send(ctx, &c, ChatInput{ReceiverID: b.ID, Message: "hi too"})
	require.NoError(t, err)

	_, err = s.Chat.Send(ctx, &a, ChatInput{ReceiverID: a.ID, Message: "self"})
	requireField(t, err, "receiver_id")
	_, err = s.Chat.Send(ctx, &a, ChatInput{ReceiverID: uuid.New(), Message: "void"})
	requireField(t, err, "receiver_id")
	_, err = s.Chat.Send(ctx, &a, ChatInput{ReceiverID: b.ID, Message: "  "})
	requireField(t, err, "message")

	inbox, err := s.Chat.List(ctx, &b, nil)
	require.NoError(t, err)
	assert.Len(t, inbox, 2)
	thread, err := s.Chat.List(ctx, &b, &a.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, msg.ID, thread[0].ID)

	_, err = s.Chat.MarkRead(ctx, &a, msg.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	_, err = s.Chat.MarkRead(ctx, &c, msg.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	read, err := s.Chat.MarkRead(ctx, &b, msg.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
}

func TestSchedule_CreateListUpdate(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	owner := newEmployer(t, s)
	stranger := newEmployer(t, s)
	cand := newCandidate(t, s)
	job := newActiveJob(t, s, &owner)
	start := time.Now().Add(24 * time.Hour).Truncate(time.Second)

	_, err := s.Schedules.Create(ctx, &owner, ScheduleInput{JobID: job.ID, StartTime: start, EndTime: start})
	requireField(t, err, "start_time")

	_, err = s.Schedules.Create(ctx, &stranger, ScheduleInput{JobID: job.ID, StartTime: start, EndTime: start.Add(4 * time.Hour)})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	ws, err := s.Schedules.Create(ctx, &owner, ScheduleInput{JobID: job.ID, StartTime: start, EndTime: start.Add(4 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, model.WorkScheduleScheduled, ws.Status)

	shifts, err := s.Schedules.List(ctx, &owner, job.ID)
	require.NoError(t, err)
	assert.Len(t, shifts, 1)

	shifts, err = s.Schedules.List(ctx, &cand, job.ID)
	require.NoError(t, err)
	assert.Empty(t, shifts)

	app, err := s.Applications.Create(ctx, &cand, ApplyInput{JobID: job.ID})
	require.NoError(t, err)
	_, err = s.Applications.Approve(ctx, &owner, app.ID)
	require.NoError(t, err)
	shifts, err = s.Schedules.List(ctx, &cand, job.ID)
	require.NoError(t, err)
	assert.Len(t, shifts, 1)

	_, err = s.Schedules.SetStatus(ctx, &owner, ws.ID, ScheduleStatusInput{Status: "paused"})
	requireField(t, err, "status")
	ws, err = s.Schedules.SetStatus(ctx, &owner, ws.ID, ScheduleStatusInput{Status: model.WorkScheduleCompleted})
	require.NoError(t, err)
	assert.Equal(t, model.WorkScheduleCompleted, ws.Status)
}

func TestNotifications_CallerScoped(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	a := newCandidate(t, s)
	b := newCandidate(t, s)

	require.NoError(t, s.Users.SendEmail(ctx, &a, SendEmailInput{Message: "ping"}))

	list, err := s.Notifications.List(ctx, &a, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ping", list[0].Message)

	other, err := s.Notifications.List(ctx, &b, false)
	require.NoError(t, err)
	assert.Empty(t, other)

	_, err = s.Notifications.MarkRead(ctx, &b, list[0].ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	n, err := s.Notifications.MarkRead(ctx, &a, list[0].ID)
	require.NoError(t, err)
	assert.True(t, n.IsRead)

	unread, err := s.Notifications.List(ctx, &a, true)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestFollow_Unfollow(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	cand := newCandidate(t, s)
	employer := database.TestUserEmployer2

	_, err := s.Follows.Follow(ctx, &employer, database.TestEmployer1.ID, FollowInput{})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	_, err = s.Follows.Follow(ctx, &cand, 999999, FollowInput{})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	f, err := s.Follows.Follow(ctx, &cand, database.TestEmployer2.ID, FollowInput{})
	require.NoError(t, err)
	assert.True(t, f.NotifyEmail)

	off := false
	f2, err := s.Follows.Follow(ctx, &cand, database.TestEmployer2.ID, FollowInput{NotifyEmail: &off})
	require.NoError(t, err)
	assert.Equal(t, f.ID, f2.ID)
	assert.False(t, f2.NotifyEmail)

	following, err := s.Follows.Following(ctx, &cand)
	require.NoError(t, err)
	assert.Len(t, following, 1)

	require.NoError(t, s.Follows.Unfollow(ctx, &cand, database.TestEmployer2.ID))
	assert.ErrorIs(t, s.Follows.Unfollow(ctx, &cand, database.TestEmployer2.ID), apperror.ErrNotFound)
}

func TestVerification_Flow(t *testing.T) {
	s, queue := newTestServices(t)
	ctx := context.Background()
	emp := newEmployer(t, s)
	cand := newCandidate(t, s)
	admin := database.TestAdminUser

	_, err := s.Verifications.Submit(ctx, &cand, VerificationInput{DocumentLink: "https://example.com/doc.pdf"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	_, err = s.Verifications.Submit(ctx, &emp, VerificationInput{DocumentLink: "not a link"})
	requireField(t, err, "document_link")

	v, err := s.Verifications.Submit(ctx, &emp, VerificationInput{DocumentLink: "https://example.com/license.pdf"})
	require.NoError(t, err)
	assert.Equal(t, model.VerificationPending, v.Status)
	_, err = s.Verifications.Submit(ctx, &emp, VerificationInput{DocumentLink: "https://example.com/again.pdf"})
	requireField(t, err, "document_link")

	_, err = s.Verifications.Approve(ctx, &emp, v.ID, DecisionInput{})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	own, err := s.Verifications.List(ctx, &emp, "")
	require.NoError(t, err)
	assert.Len(t, own, 1)

	v, err = s.Verifications.Approve(ctx, &admin, v.ID, DecisionInput{AdminNote: "looks fine"})
	require.NoError(t, err)
	assert.Equal(t, model.VerificationApproved, v.Status)
	require.NotNil(t, v.VerifiedAt)
	assert.Equal(t, 1, queue.sentTo(emp.EmailAddress()))

	employerID, _ := emp.EmployerID()
	profile, err := s.Employers.Get(ctx, employerID)
	require.NoError(t, err)
	assert.True(t, profile.Verified)

	_, err = s.Verifications.Reject(ctx, &admin, v.ID, DecisionInput{})
	requireField(t, err, "status")
}

func TestEmployerProfile(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	emp := newEmployer(t, s)
	other := newEmployer(t, s)
	admin := database.TestAdminUser
	employerID, _ := emp.EmployerID()

	_, err := s.Employers.List(ctx, &emp)
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	all, err := s.Employers.List(ctx, &admin)
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	_, err = s.Employers.MapData(ctx, employerID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	name := "Renamed Co"
	_, err = s.Employers.Update(ctx, &other, employerID, UpdateEmployerInput{Name: &name})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := s.Employers.Update(ctx, &emp, employerID, UpdateEmployerInput{
		Name:        &name,
		Coordinates: &model.Coordinates{Latitude: 21.02, Longitude: 105.83},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Co", updated.Name)

	data, err := s.Employers.MapData(ctx, employerID)
	require.NoError(t, err)
	assert.InDelta(t, 105.83, data.Coordinates.Longitude, 1e-9)
	assert.Equal(t, updated.Location, data.Location)

	img, err := s.Employers.AddImage(ctx, &emp, employerID, []byte("jpeg"), ".jpg")
	require.NoError(t, err)
	assert.NotZero(t, img.FileID)
	_, err = s.Employers.AddImage(ctx, &other, employerID, []byte("jpeg"), ".jpg")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestCandidateProfile(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	cand := newCandidate(t, s)
	other := newCandidate(t, s)
	candidateID, _ := cand.CandidateID()

	link := "https://example.com/new.docx"
	_, err := s.Candidates.Update(ctx, &other, candidateID, UpdateCandidateInput{CVLink: &link})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	bad := "https://example.com/cv.png"
	_, err = s.Candidates.Update(ctx, &cand, candidateID, UpdateCandidateInput{CVLink: &bad})
	requireField(t, err, "cv_link")

	updated, err := s.Candidates.Update(ctx, &cand, candidateID, UpdateCandidateInput{CVLink: &link})
	require.NoError(t, err)
	assert.Equal(t, link, updated.CVLink)

	got, err := s.Candidates.Get(ctx, candidateID)
	require.NoError(t, err)
	assert.Equal(t, link, got.CVLink)
}

func TestCategories(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()

	all, err := s.Categories.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	c, err := s.Categories.Get(ctx, database.TestCategory.ID)
	require.NoError(t, err)
	assert.Equal(t, database.TestCategory.Name, c.Name)

	_, err = s.Categories.Get(ctx, 999999)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestStats_AdminOnly(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()
	admin := database.TestAdminUser
	owner := newEmployer(t, s)
	cand := newCandidate(t, s)
	job := newActiveJob(t, s, &owner)
	_, err := s.Applications.Create(ctx, &cand, ApplyInput{JobID: job.ID})
	require.NoError(t, err)

	_, err = s.Stats.Jobs(ctx, &owner, time.Time{})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	stats, err := s.Stats.Jobs(ctx, &admin, time.Time{})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.TotalJobs, int64(5))
	assert.GreaterOrEqual(t, stats.TotalApplications, int64(1))

	var draft int64
	for _, c := range stats.JobsByStatus {
		if c.Status == model.JobStatusDraft {
			draft = c.Count
		}
	}
	assert.GreaterOrEqual(t, draft, int64(1))
	require.NotEmpty(t, stats.ApplicationsPerDay)
}
