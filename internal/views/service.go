// Package views assembles every console screen from collaborator data. Each
// screen is one or more joined fetches followed by a pure projection from
// internal/listing or internal/charts.
package views

import (
	"context"
	"errors"
	"time"

	"worknest-console/internal/config"
	"worknest-console/internal/logger"
	"worknest-console/internal/notify"
	"worknest-console/internal/realtime"
	"worknest-console/internal/remote"
	"worknest-console/internal/session"
)

var (
	// ErrNotFound is a missing primary entity, or one outside the caller's reach.
	ErrNotFound = errors.New("not found")
	// ErrNotAssignable is an assignee without an active assignment to the project.
	ErrNotAssignable = errors.New("employee not assigned to project")
	// ErrTimeLogRequired is a status change that must carry a time log.
	ErrTimeLogRequired = errors.New("time log required")
)

// ValidationError is a request the console rejects before calling the collaborator.
type ValidationError struct {
	Notice notify.Notice
}

func (e *ValidationError) Error() string {
	return e.Notice.Message
}

// Publisher fans mutation events out to a company's open consoles.
type Publisher interface {
	Publish(companyID int64, event realtime.Event)
}

// Service builds screens for a session.
type Service struct {
	client    *remote.Client
	limits    config.PageLimits
	publisher Publisher
	now       func() time.Time
}

// NewService creates a view service. publisher may be nil.
func NewService(client *remote.Client, limits config.PageLimits, publisher Publisher) *Service {
	return &Service{
		client:    client,
		limits:    limits,
		publisher: publisher,
		now:       time.Now,
	}
}

// api is the collaborator client acting with the session's token.
func (s *Service) api(sess *session.Session) *remote.Client {
	return s.client.WithToken(sess.Token)
}

func (s *Service) publish(ctx context.Context, sess *session.Session, entity, action string, id int64) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(sess.CompanyID, realtime.Event{
		Type:   entity + "_changed",
		Entity: entity,
		Action: action,
		ID:     id,
		By:     sess.EmpID,
		At:     s.now().UTC(),
	})
	logger.DebugLog(ctx, "published %s %s id=%d company=%d", entity, action, id, sess.CompanyID)
}
