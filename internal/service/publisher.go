package service

import (
	"errors"

	"go-inventory-pos/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventPublisher receives change events after a mutation has committed
type EventPublisher interface {
	Publish(ownerID string, event ws.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, ws.Event) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

// notFound turns gorm's missing-row error into a NotFoundError
func notFound(err error, resource string, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Resource: resource, ID: id.String()}
	}
	return err
}
