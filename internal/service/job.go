package service

import (
	"context"
	"fmt"
	"strings"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/logger"
	"findjob-backend/internal/metrics"
	"findjob-backend/internal/model"
	"findjob-backend/internal/notify"
	"findjob-backend/internal/policy"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobService runs the posting lifecycle.
type JobService struct{ Deps }

// JobInput is the body of POST /jobs.
type JobInput struct {
	model.EditableJobInfo
}

// UpdateJobInput is the body of PATCH /jobs/{id}. Nil fields are left unchanged.
type UpdateJobInput struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Skills      *string            `json:"skills"`
	Salary      *string            `json:"salary"`
	TimeWork    *string            `json:"time_work"`
	Location    *string            `json:"location"`
	Coordinates *model.Coordinates `json:"coordinates"`
	WorkHours   *int               `json:"work_hours"`
	CategoryID  *uint              `json:"category_id"`
}

// JobFilter narrows GET /jobs.
type JobFilter struct {
	Query      string
	Location   string
	CategoryID uint
	Status     model.JobStatus
	EmployerID uint
}

// Create stores a draft posting owned by the caller's employer profile and
// notifies the employer's followers.
func (s *JobService) Create(ctx context.Context, caller *model.User, in JobInput) (model.Job, error) {
	if err := requireUser(caller); err != nil {
		return model.Job{}, err
	}
	employerID, ok := caller.EmployerID()
	if !ok {
		return model.Job{}, apperror.ErrForbidden
	}
	info := normalizeJobInfo(in.EditableJobInfo)
	if err := info.Validate(); err != nil {
		return model.Job{}, err
	}

	job := model.Job{
		EmployerID:      employerID,
		EditableJobInfo: info,
		Status:          model.JobStatusDraft,
	}
	err := s.transact(ctx, func(tx *gorm.DB, out *notify.Outbox) error {
		if err := ensureCategory(tx, job.CategoryID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&job).Error; err != nil {
			return err
		}
		return s.notifyFollowers(tx, out, employerID, &job)
	})
	if err != nil {
		return model.Job{}, err
	}
	metrics.JobsCreatedTotal.Inc()
	return job, nil
}

func (s *JobService) notifyFollowers(tx *gorm.DB, out *notify.Outbox, employerID uint, job *model.Job) error {
	var employer model.Employer
	if err := tx.First(&employer, employerID).Error; err != nil {
		return err
	}
	var follows []model.Follow
	if err := tx.Preload("Candidate.User").Where("employer_id = ?", employerID).Find(&follows).Error; err != nil {
		return err
	}
	body := fmt.Sprintf("Employer %s has posted a new job: %s", employer.Name, job.Title)
	for _, f := range follows {
		if f.Candidate == nil || f.Candidate.User == nil {
			continue
		}
		if err := out.Notify(tx, f.Candidate.User, notify.Message{
			Subject: "New Job Posted",
			Body:    body,
			Email:   f.NotifyEmail,
		}); err != nil {
			return err
		}
	}
	return nil
}

// List return postings visible to caller, which may be nil for anonymous.
func (s *JobService) List(ctx context.Context, caller *model.User, f JobFilter) ([]model.Job, error) {
	q := s.DB.WithContext(ctx).Model(&model.Job{}).Preload("Category")
	q = visibleJobs(q, caller)

	if f.Query != "" {
		q = q.Where("jobs.title ILIKE ?", "%"+escapeLike(f.Query)+"%")
	}
	if f.Location != "" {
		q = q.Where("jobs.location ILIKE ?", "%"+escapeLike(f.Location)+"%")
	}
	if f.CategoryID != 0 {
		q = q.Where("jobs.category_id = ?", f.CategoryID)
	}
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, apperror.Invalid("status", fmt.Sprintf("unknown status %q", f.Status))
		}
		q = q.Where("jobs.status = ?", f.Status)
	}
	if f.EmployerID != 0 {
		q = q.Where("jobs.employer_id = ?", f.EmployerID)
	}

	jobs := []model.Job{}
	if err := q.Order("jobs.created_at DESC").Order("jobs.id DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// visibleJobs hides drafts from everyone but their owner and administrators.
func visibleJobs(q *gorm.DB, caller *model.User) *gorm.DB {
	if caller != nil && caller.IsAdmin() {
		return q
	}
	if caller != nil {
		if id, ok := caller.EmployerID(); ok {
			return q.Where("jobs.status <> ? OR jobs.employer_id = ?", model.JobStatusDraft, id)
		}
	}
	return q.Where("jobs.status <> ?", model.JobStatusDraft)
}

// Get return one posting visible to caller. Hidden drafts are reported as not found.
func (s *JobService) Get(ctx context.Context, caller *model.User, id uint) (model.Job, error) {
	var job model.Job
	if err := s.DB.WithContext(ctx).Preload("Category").First(&job, id).Error; err != nil {
		return model.Job{}, notFound(err)
	}
	if !job.IsPublic() && !s.Authz.Allow(caller, policy.ActionRead, &job) {
		return model.Job{}, apperror.ErrNotFound
	}
	return job, nil
}

// Employer return the employer owning a visible posting.
func (s *JobService) Employer(ctx context.Context, caller *model.User, id uint) (model.Employer, error) {
	job, err := s.Get(ctx, caller, id)
	if err != nil {
		return model.Employer{}, err
	}
	var employer model.Employer
	if err := s.DB.WithContext(ctx).Preload("Images").First(&employer, job.EmployerID).Error; err != nil {
		return model.Employer{}, notFound(err)
	}
	return employer, nil
}

// MapData return the posting location. Postings without coordinates have none.
func (s *JobService) MapData(ctx context.Context, caller *model.User, id uint) (model.MapData, error) {
	job, err := s.Get(ctx, caller, id)
	if err != nil {
		return model.MapData{}, err
	}
	if job.Coordinates == nil {
		return model.MapData{}, apperror.ErrNotFound
	}
	return model.MapData{
		Location:         job.Location,
		Coordinates:      *job.Coordinates,
		GoogleMapsAPIKey: s.MapsAPIKey,
	}, nil
}

// Update edits posting fields on behalf of the owner or an administrator.
func (s *JobService) Update(ctx context.Context, caller *model.User, id uint, in UpdateJobInput) (model.Job, error) {
	if err := requireUser(caller); err != nil {
		return model.Job{}, err
	}
	var out model.Job
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := s.lockOwned(tx, caller, policy.ActionUpdate, id)
		if err != nil {
			return err
		}
		info := job.EditableJobInfo
		applyJobUpdate(&info, in)
		info = normalizeJobInfo(info)
		if err := info.Validate(); err != nil {
			return err
		}
		if in.CategoryID != nil {
			if err := ensureCategory(tx, info.CategoryID); err != nil {
				return err
			}
		}
		if err := tx.Model(&model.Job{}).Where("id = ?", job.ID).Updates(map[string]any{
			"title":       info.Title,
			"description": info.Description,
			"skills":      info.Skills,
			"salary":      info.Salary,
			"time_work":   info.TimeWork,
			"location":    info.Location,
			"coordinates": info.Coordinates,
			"work_hours":  info.WorkHours,
			"category_id": info.CategoryID,
		}).Error; err != nil {
			return err
		}
		job.EditableJobInfo = info
		job.Category = nil
		out = job
		return nil
	})
	return out, err
}

// Delete removes a posting and, by cascade, its applications and schedules.
func (s *JobService) Delete(ctx context.Context, caller *model.User, id uint) error {
	if err := requireUser(caller); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := s.lockOwned(tx, caller, policy.ActionDelete, id)
		if err != nil {
			return err
		}
		return tx.Delete(&model.Job{}, job.ID).Error
	})
}

// SetStatus moves a posting through its lifecycle.
func (s *JobService) SetStatus(ctx context.Context, caller *model.User, id uint, next model.JobStatus) (model.Job, error) {
	if err := requireUser(caller); err != nil {
		return model.Job{}, err
	}
	var out model.Job
	var changed bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := s.lockOwned(tx, caller, policy.ActionUpdate, id)
		if err != nil {
			return err
		}
		prev := job.Status
		if err := job.SetStatus(next); err != nil {
			return err
		}
		changed = prev != job.Status
		if changed {
			if err := tx.Model(&model.Job{}).Where("id = ?", job.ID).Update("status", job.Status).Error; err != nil {
				return err
			}
		}
		out = job
		return nil
	})
	if err != nil {
		return model.Job{}, err
	}
	if changed {
		metrics.JobStatusChangesTotal.WithLabelValues(string(out.Status)).Inc()
		log := logger.Get()
		log.Info().Uint("job_id", out.ID).Str("status", string(out.Status)).Msg("job status changed")
	}
	return out, nil
}

// lockOwned loads a posting FOR UPDATE and checks the caller may act on it.
// Drafts the caller cannot see are reported as not found.
func (s *JobService) lockOwned(tx *gorm.DB, caller *model.User, action policy.Action, id uint) (model.Job, error) {
	var job model.Job
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&job, id).Error; err != nil {
		return model.Job{}, notFound(err)
	}
	if !s.Authz.Allow(caller, action, &job) {
		if !job.IsPublic() {
			return model.Job{}, apperror.ErrNotFound
		}
		return model.Job{}, apperror.ErrForbidden
	}
	return job, nil
}

func applyJobUpdate(info *model.EditableJobInfo, in UpdateJobInput) {
	if in.Title != nil {
		info.Title = *in.Title
	}
	if in.Description != nil {
		info.Description = *in.Description
	}
	if in.Skills != nil {
		info.Skills = *in.Skills
	}
	if in.Salary != nil {
		info.Salary = *in.Salary
	}
	if in.TimeWork != nil {
		info.TimeWork = *in.TimeWork
	}
	if in.Location != nil {
		info.Location = *in.Location
	}
	if in.Coordinates != nil {
		info.Coordinates = in.Coordinates
	}
	if in.WorkHours != nil {
		info.WorkHours = *in.WorkHours
	}
	if in.CategoryID != nil {
		info.CategoryID = *in.CategoryID
	}
}

func normalizeJobInfo(info model.EditableJobInfo) model.EditableJobInfo {
	info.Title = strings.TrimSpace(info.Title)
	info.Description = strings.TrimSpace(info.Description)
	info.Skills = strings.TrimSpace(info.Skills)
	info.Salary = strings.TrimSpace(info.Salary)
	info.TimeWork = strings.TrimSpace(info.TimeWork)
	info.Location = strings.TrimSpace(info.Location)
	return info
}

func ensureCategory(tx *gorm.DB, id uint) error {
	ok, err := exists(tx, &model.Category{}, "id = ?", id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Invalid("category_id", "category does not exist")
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
