package service

import (
	"context"
	"testing"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/database"
	"findjob-backend/internal/model"
	"findjob-backend/internal/utilities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEmployer_CreatesProfile(t *testing.T) {
	s, _ := newTestServices(t)
	name := unique("boss")

	u, err := s.Users.RegisterEmployer(context.Background(), RegisterEmployerInput{
		Username:    name,
		Password:    "secret123",
		Email:       name + "@Example.com",
		Name:        "  Pho 24  ",
		Location:    "Hue",
		Coordinates: &model.Coordinates{Latitude: 16.46, Longitude: 107.59},
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployer, u.Role)
	assert.Equal(t, name+"@example.com", u.EmailAddress())

	var stored model.User
	require.NoError(t, testDB.Preload("Employer").Where("id = ?", u.ID).First(&stored).Error)
	require.NotNil(t, stored.Employer)
	assert.Equal(t, "Pho 24", stored.Employer.Name)
	require.NotNil(t, stored.Employer.Coordinates)
	assert.InDelta(t, 16.46, stored.Employer.Coordinates.Latitude, 1e-9)
	assert.IsType(t, model.EmployerProfile{}, stored.Profile())
	assert.True(t, utilities.VerifyPassword("secret123", stored.Password))
}

func TestRegisterCandidate_CreatesProfile(t *testing.T) {
	s, _ := newTestServices(t)
	u := newCandidate(t, s)

	assert.Equal(t, model.RoleCandidate, u.Role)
	_, ok := u.CandidateID()
	assert.True(t, ok)
}

func TestRegister_RejectsInvalidInput(t *testing.T) {
	s, _ := newTestServices(t)

	_, err := s.Users.RegisterCandidate(context.Background(), RegisterCandidateInput{
		Username: "ab c",
		Password: "12 3",
		Email:    "not-an-email",
		Name:     "X",
		CVLink:   "ftp://example.com/cv.txt",
	})
	requireField(t, err, "username")
	requireField(t, err, "password")
	requireField(t, err, "email")
	requireField(t, err, "cv_link")
}

func TestRegister_RejectsEmojiAndBadCoordinates(t *testing.T) {
	s, _ := newTestServices(t)

	_, err := s.Users.RegisterEmployer(context.Background(), RegisterEmployerInput{
		Username:    "happy😀user",
		Password:    "pass😀word",
		Email:       "emoji@example.com",
		Name:        "Emoji Co",
		Coordinates: &model.Coordinates{Latitude: 91, Longitude: 0},
	})
	requireField(t, err, "username")
	requireField(t, err, "password")
	requireField(t, err, "coordinates.latitude")
}

func TestRegister_DuplicateUsernameAndEmail(t *testing.T) {
	s, _ := newTestServices(t)

	_, err := s.Users.RegisterCandidate(context.Background(), RegisterCandidateInput{
		Username: database.TestUserCandidate1.Username,
		Password: "secret123",
		Email:    database.TestUserCandidate1.EmailAddress(),
		Name:     "Copycat",
	})
	requireField(t, err, "username")
	requireField(t, err, "email")
}

func TestUpdateSelf_ChangesAllowedFields(t *testing.T) {
	s, _ := newTestServices(t)
	u := newCandidate(t, s)
	first, pwd, off := "Linh", "newpass99", false

	updated, err := s.Users.UpdateSelf(context.Background(), &u, UpdateSelfInput{
		FirstName:         &first,
		Password:          &pwd,
		EmailNotification: &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "Linh", updated.FirstName)
	assert.False(t, updated.EmailNotification)
	assert.True(t, utilities.VerifyPassword("newpass99", updated.Password))
	assert.Equal(t, u.Username, updated.Username)
	require.NotNil(t, updated.Candidate)
}

func TestUpdateSelf_RevalidatesPassword(t *testing.T) {
	s, _ := newTestServices(t)
	u := newCandidate(t, s)
	short := "abc"

	_, err := s.Users.UpdateSelf(context.Background(), &u, UpdateSelfInput{Password: &short})
	requireField(t, err, "password")
}

func TestCurrent_Anonymous(t *testing.T) {
	s, _ := newTestServices(t)
	_, err := s.Users.Current(context.Background(), nil)
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestSendEmail(t *testing.T) {
	s, queue := newTestServices(t)
	u := newCandidate(t, s)

	require.NoError(t, s.Users.SendEmail(context.Background(), &u, SendEmailInput{}))
	assert.Equal(t, 1, queue.sentTo(u.EmailAddress()))

	var n model.Notification
	require.NoError(t, testDB.Where("user_id = ?", u.ID).First(&n).Error)
	assert.Equal(t, model.NotificationTypeEmail, n.Type)

	u.EmailNotification = false
	err := s.Users.SendEmail(context.Background(), &u, SendEmailInput{})
	requireField(t, err, "email_notification")
	assert.Equal(t, 1, queue.sentTo(u.EmailAddress()))
}

func TestSetAvatar_StoresInDatabase(t *testing.T) {
	s, _ := newTestServices(t)
	u := newCandidate(t, s)

	updated, err := s.Users.SetAvatar(context.Background(), &u, []byte("png-bytes"), ".png")
	require.NoError(t, err)
	require.NotNil(t, updated.AvatarID)

	file, rc, size, err := s.Files.Open(context.Background(), *updated.AvatarID)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, ".png", file.Extension)
	assert.Equal(t, int64(len("png-bytes")), size)
}
