package model

import (
	"time"

	"github.com/google/uuid"
)

type (
	Entity string
	Action string
)

const (
	EntityRepair    Entity = "repair"
	EntityPart      Entity = "part"
	EntityStockPart Entity = "stock_part"
)

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionDeleted   Action = "deleted"
	ActionConverted Action = "converted"
)

// ChangeEvent describes a mutation confirmed by the backend.
type ChangeEvent struct {
	EventID    uuid.UUID
	CarID      int64
	Entity     Entity
	Action     Action
	EntityID   int64
	RepairID   int64
	OccurredAt time.Time
}
