package service

import (
	"context"
	"time"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/model"
)

// StatsService aggregates activity for administrators.
type StatsService struct{ Deps }

// StatusCount is the number of postings in one status.
type StatusCount struct {
	Status model.JobStatus `json:"status"`
	Count  int64           `json:"count"`
}

// DayCount is the number of applications submitted on one day.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

// JobStats is the payload of GET /stats/jobs.
type JobStats struct {
	JobsByStatus       []StatusCount `json:"jobs_by_status"`
	ApplicationsPerDay []DayCount    `json:"applications_per_day"`
	TotalJobs          int64         `json:"total_jobs"`
	TotalApplications  int64         `json:"total_applications"`
}

// Jobs return posting and application counts. Only administrators may read them.
// Days without applications are omitted; since bounds the day series when non-zero.
func (s *StatsService) Jobs(ctx context.Context, caller *model.User, since time.Time) (JobStats, error) {
	if err := requireUser(caller); err != nil {
		return JobStats{}, err
	}
	if !caller.IsAdmin() {
		return JobStats{}, apperror.ErrForbidden
	}

	db := s.DB.WithContext(ctx)
	stats := JobStats{
		JobsByStatus:       []StatusCount{},
		ApplicationsPerDay: []DayCount{},
	}
	if err := db.Model(&model.Job{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&stats.JobsByStatus).Error; err != nil {
		return JobStats{}, err
	}
	for _, c := range stats.JobsByStatus {
		stats.TotalJobs += c.Count
	}

	q := db.Model(&model.Application{}).
		Select("date_trunc('day', applied_date) AS day, COUNT(*) AS count")
	if !since.IsZero() {
		q = q.Where("applied_date >= ?", since)
	}
	if err := q.Group("day").Order("day ASC").Scan(&stats.ApplicationsPerDay).Error; err != nil {
		return JobStats{}, err
	}
	for _, c := range stats.ApplicationsPerDay {
		stats.TotalApplications += c.Count
	}
	return stats, nil
}
