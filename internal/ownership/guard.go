// Package ownership decides whether an authenticated user may act on a
// resource identified by, or belonging to, another user id.
package ownership

import (
	"github.com/dtroode/tasktracker-server/internal/apierror"
	"github.com/dtroode/tasktracker-server/internal/model"
)

// Decision is the outcome of an ownership check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Authorize allows only when both ids are set and equal. Zero ids never match.
func Authorize(actual, claimed int64) Decision {
	if actual <= 0 || claimed <= 0 || actual != claimed {
		return Deny
	}
	return Allow
}

// RequireSameUser returns a forbidden error unless actual and claimed match.
// Used for user ids taken from the request path or body.
func RequireSameUser(actual, claimed int64) error {
	if Authorize(actual, claimed) == Deny {
		return apierror.NewErrForbidden()
	}
	return nil
}

// RequireTaskOwner returns a not found error unless task belongs to actual,
// so tasks of other users are indistinguishable from missing ones.
func RequireTaskOwner(actual int64, task model.Task) error {
	if Authorize(actual, task.UserID) == Deny {
		return apierror.NewErrTaskNotFound()
	}
	return nil
}
