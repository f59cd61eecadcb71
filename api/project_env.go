package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rpupo63/solar-ops-backend/database"
	"github.com/rpupo63/solar-ops-backend/errs"
	"github.com/rpupo63/solar-ops-backend/models"
	"github.com/rpupo63/solar-ops-backend/services"
	"github.com/rpupo63/solar-ops-backend/tracker"
)

// projectEnv is what the project handlers share: the store, the remote
// mirror and the per-project write locks.
type projectEnv struct {
	projects database.ProjectStore
	mirror   projectSync
	locks    *projectLocks
	now      func() time.Time
}

func (e projectEnv) today() models.Date {
	return models.NewDate(e.now())
}

// update loads a project, applies change, mirrors the result and saves it.
// Nothing is saved when change or the mirror fails.
func (e projectEnv) update(ctx context.Context, id string, change func(*models.Project, models.Date) (*models.Project, error)) (*models.Project, error) {
	unlock := e.locks.lock(id)
	defer unlock()

	p, err := e.projects.FindByID(ctx, id)
	if err != nil {
		return nil, wrapDatabaseError("find project", "project", err)
	}
	next, err := change(p, e.today())
	if err != nil {
		return nil, err
	}
	next, err = e.mirror.push(ctx, next)
	if err != nil {
		return nil, err
	}
	if err := e.projects.Update(ctx, next); err != nil {
		return nil, wrapDatabaseError("update project", "project", err)
	}
	return next, nil
}

// remove deletes a project locally and from the remote API.
func (e projectEnv) remove(ctx context.Context, id string) error {
	unlock := e.locks.lock(id)
	defer unlock()

	p, err := e.projects.FindByID(ctx, id)
	if err != nil {
		return wrapDatabaseError("find project", "project", err)
	}
	// a project already gone remotely is still removed here
	if err := e.mirror.remove(ctx, p); err != nil && errs.StatusOf(err) != http.StatusNotFound {
		return err
	}
	if err := e.projects.Delete(ctx, id); err != nil {
		return wrapDatabaseError("delete project", "project", err)
	}
	return nil
}

// projectSync mirrors locally stored projects to the remote projects API.
type projectSync struct {
	remote  *services.Client
	enabled bool
}

// push sends p to the remote API, creating the remote record on first push.
// The returned copy carries the remote id.
func (s projectSync) push(ctx context.Context, p *models.Project) (*models.Project, error) {
	if !s.enabled {
		return p, nil
	}
	payload := tracker.BuildPayload(p)
	if p.RemoteID != "" {
		if _, err := s.remote.UpdateProject(ctx, p.RemoteID, payload); err != nil {
			return nil, err
		}
		return p, nil
	}

	created, err := s.remote.CreateProject(ctx, payload)
	if err != nil {
		return nil, err
	}
	next := p.Clone()
	next.RemoteID = created.ID
	return next, nil
}

func (s projectSync) remove(ctx context.Context, p *models.Project) error {
	if !s.enabled || p.RemoteID == "" {
		return nil
	}
	return s.remote.DeleteProject(ctx, p.RemoteID)
}

// projectLocks serializes read-modify-write cycles per project id.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*projectLock
}

type projectLock struct {
	sync.Mutex
	refs int
}

func newProjectLocks() *projectLocks {
	return &projectLocks{locks: make(map[string]*projectLock)}
}

// lock blocks until id is free and returns the matching unlock.
func (l *projectLocks) lock(id string) func() {
	l.mu.Lock()
	pl, ok := l.locks[id]
	if !ok {
		pl = &projectLock{}
		l.locks[id] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.Lock()
	return func() {
		pl.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
