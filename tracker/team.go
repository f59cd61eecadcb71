package tracker

import (
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
)

// AssignUser adds u to the project team. Assigning someone already on the
// team is a no-op.
func AssignUser(p *models.Project, u models.User) (*models.Project, error) {
	if u.ID == "" {
		return nil, errs.NewMissingRequiredFieldError("userId")
	}
	next := p.Clone()
	for _, existing := range next.Users {
		if existing.ID == u.ID {
			return next, nil
		}
	}
	next.Users = append(next.Users, u)
	return next, nil
}

func UnassignUser(p *models.Project, userID string) (*models.Project, error) {
	next := p.Clone()
	for i, u := range next.Users {
		if u.ID == userID {
			next.Users = append(next.Users[:i], next.Users[i+1:]...)
			return next, nil
		}
	}
	return nil, errs.NewNotFound("user")
}
