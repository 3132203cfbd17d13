package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"findjob-backend/internal/config"
	m "findjob-backend/internal/model"
	"findjob-backend/internal/utilities"

	"github.com/docker/go-connections/nat"
	// database/sql driver used before gorm connects
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & profiles
var (
	TestAdminUser      m.User
	TestUserEmployer1  m.User
	TestUserEmployer2  m.User
	TestUserCandidate1 m.User
	TestUserCandidate2 m.User
	TestEmployer1      m.Employer
	TestEmployer2      m.Employer
	TestCandidate1     m.Candidate
	TestCandidate2     m.Candidate

	// Plain password shared by every seeded user
	TestSeedPassword = "SeedPass123"

	TestCategory m.Category

	// Seeded job posts, one per status
	TestJobActive    m.Job
	TestJobDraft     m.Job
	TestJobClosed    m.Job
	TestJobCompleted m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the seeded DB instance, and any error encountered during setup.
// The container is shared by every caller in the same test binary.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {
	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	ctx := context.Background()
	dbContainer, err := postgres.Run(
		ctx,
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(ctx)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(ctx, nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort.Port(), dbUser, dbPwd, dbName)

	if err := prepareExtensions(ctx, dsn); err != nil {
		return dbContainer.Terminate, nil, err
	}

	db, err := NewDBInstance(config.DBConfig{
		UseConstr: true,
		Constr:    dsn,
		DBName:    dbName,
	})
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(ctx)
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

func prepareExtensions(ctx context.Context, dsn string) error {
	raw, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = raw.Close() }()

	_, err = raw.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`)
	return err
}

// seedTestData inserts one admin, two employers, two candidates and a job
// post in each status.
func seedTestData(db *DBinstanceStruct) error {
	admin, err := utilities.CreateAdmin(db.DB, "admin_user", TestSeedPassword)
	if err != nil {
		return err
	}
	TestAdminUser = admin

	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	employerSpecs := []struct {
		username string
		email    string
		info     m.EditableEmployerInfo
		verified bool
		dst      *m.User
	}{
		{"employer_user_1", "employer1@example.com", m.EditableEmployerInfo{
			Name:        "Saigon Coffee",
			TaxCode:     "0101234567",
			Location:    "District 1, Ho Chi Minh City",
			Coordinates: &m.Coordinates{Latitude: 10.7769, Longitude: 106.7009},
		}, true, &TestUserEmployer1},
		{"employer_user_2", "employer2@example.com", m.EditableEmployerInfo{
			Name:     "Hanoi Books",
			TaxCode:  "0107654321",
			Location: "Hoan Kiem, Ha Noi",
		}, false, &TestUserEmployer2},
	}
	for _, s := range employerSpecs {
		email := s.email
		u := m.NewUser(s.username, &email, hashedPwd, m.EmployerProfile{Employer: &m.Employer{
			EditableEmployerInfo: s.info,
			Verified:             s.verified,
		}})
		if err := db.Create(&u).Error; err != nil {
			return err
		}
		*s.dst = u
	}
	TestEmployer1 = *TestUserEmployer1.Employer
	TestEmployer2 = *TestUserEmployer2.Employer

	candidateSpecs := []struct {
		username string
		email    string
		info     m.EditableCandidateInfo
		dst      *m.User
	}{
		{"candidate_user_1", "candidate1@example.com", m.EditableCandidateInfo{
			Name:   "Nguyen Van An",
			CVLink: "https://example.com/cv/an.pdf",
		}, &TestUserCandidate1},
		{"candidate_user_2", "candidate2@example.com", m.EditableCandidateInfo{
			Name: "Tran Thi Binh",
		}, &TestUserCandidate2},
	}
	for _, s := range candidateSpecs {
		email := s.email
		u := m.NewUser(s.username, &email, hashedPwd, m.CandidateProfile{Candidate: &m.Candidate{
			EditableCandidateInfo: s.info,
		}})
		if err := db.Create(&u).Error; err != nil {
			return err
		}
		*s.dst = u
	}
	TestCandidate1 = *TestUserCandidate1.Candidate
	TestCandidate2 = *TestUserCandidate2.Candidate

	if err := db.Order("id ASC").First(&TestCategory).Error; err != nil {
		return err
	}

	jobSpecs := []struct {
		employerID uint
		title      string
		status     m.JobStatus
		coords     *m.Coordinates
		dst        *m.Job
	}{
		{TestEmployer1.ID, "Barista (part-time)", m.JobStatusActive, &m.Coordinates{Latitude: 10.7769, Longitude: 106.7009}, &TestJobActive},
		{TestEmployer1.ID, "Cashier (weekend)", m.JobStatusDraft, nil, &TestJobDraft},
		{TestEmployer2.ID, "Bookstore Assistant", m.JobStatusClosed, nil, &TestJobClosed},
		{TestEmployer1.ID, "Event Helper", m.JobStatusCompleted, nil, &TestJobCompleted},
	}
	for _, s := range jobSpecs {
		job := m.Job{
			EmployerID: s.employerID,
			EditableJobInfo: m.EditableJobInfo{
				Title:       s.title,
				Description: "Seeded job post",
				Skills:      "communication",
				Salary:      "25000 VND/h",
				TimeWork:    "evening",
				Location:    "Ho Chi Minh City",
				Coordinates: s.coords,
				WorkHours:   4,
				CategoryID:  TestCategory.ID,
			},
			Status: s.status,
		}
		if err := db.Create(&job).Error; err != nil {
			return err
		}
		*s.dst = job
	}

	return nil
}
