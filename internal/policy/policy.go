// Package policy decides whether an identity may act on a record.
//
// The rule is the same for every target: administrators and superusers may do
// anything, everyone else only what they own. Ownership is target specific.
package policy

import (
	"findjob-backend/internal/apperror"
	"findjob-backend/internal/model"
)

// Action is the kind of access requested.
type Action string

// Actions checked by services.
const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionDecide Action = "decide"
)

// Authorizer is created once by the server and passed to every service.
type Authorizer struct{}

// NewAuthorizer return an Authorizer.
func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

// Allow reports whether user may perform action on target.
// A nil user is anonymous and never allowed.
func (a *Authorizer) Allow(user *model.User, action Action, target any) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return owns(user, action, target)
}

// Authorize is Allow returning apperror.ErrForbidden on denial.
func (a *Authorizer) Authorize(user *model.User, action Action, target any) error {
	if user == nil {
		return apperror.ErrUnauthenticated
	}
	if !a.Allow(user, action, target) {
		return apperror.ErrForbidden
	}
	return nil
}

func owns(user *model.User, action Action, target any) bool {
	switch t := target.(type) {
	case *model.User:
		return t.ID == user.ID
	case *model.Employer:
		id, ok := user.EmployerID()
		return ok && t.ID == id
	case *model.Candidate:
		id, ok := user.CandidateID()
		return ok && t.ID == id
	case *model.Job:
		return ownsJob(user, t)
	case *model.Application:
		return ownsApplication(user, action, t)
	case *model.WorkSchedule:
		return t.Job != nil && ownsJob(user, t.Job)
	case *model.Notification:
		return t.UserID == user.ID
	case *model.ChatMessage:
		if action == ActionUpdate {
			return t.ReceiverID == user.ID
		}
		return t.SenderID == user.ID || t.ReceiverID == user.ID
	case *model.Verification:
		if action == ActionDecide {
			return false
		}
		id, ok := user.EmployerID()
		return ok && t.EmployerID == id
	default:
		return false
	}
}

func ownsJob(user *model.User, job *model.Job) bool {
	id, ok := user.EmployerID()
	return ok && job.EmployerID == id
}

// ownsApplication: the employer owning the job may read and decide,
// the applying candidate may only read.
func ownsApplication(user *model.User, action Action, app *model.Application) bool {
	if app.Job != nil && ownsJob(user, app.Job) {
		return true
	}
	if action == ActionDecide {
		return false
	}
	id, ok := user.CandidateID()
	return ok && app.CandidateID == id
}
