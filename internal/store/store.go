// Package store provides persistence for named position slots.
package store

import (
	"context"

	"pmcc-analyzer/internal/models"
)

// PositionStore defines the interface for slot persistence. A slot is a
// named saved position, either "resolved" (re-queried live on load) or
// "frozen" (fully self-contained, usable without market access).
type PositionStore interface {
	SaveSlot(ctx context.Context, slot *models.PositionSlot) error
	GetSlot(ctx context.Context, name string) (*models.PositionSlot, error)
	ListSlots(ctx context.Context) ([]models.PositionSlot, error)
	DeleteSlot(ctx context.Context, name string) error
	Close() error
}
