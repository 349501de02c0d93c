package service

import (
	"tavern_bot/internal/domain"
)

// Publisher receives economy events after their transaction commits.
type Publisher interface {
	Publish(ev domain.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.Event) {}

func isUserError(err error) bool {
	_, ok := domain.AsError(err)
	return ok
}
