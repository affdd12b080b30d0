package models

import "time"

// Activity actions recorded by the mutating services.
const (
	ActionAddItem    = "ADD_ITEM"
	ActionUpdateItem = "UPDATE_ITEM"
	ActionDeleteItem = "DELETE_ITEM"
	ActionBackup     = "BACKUP"
	ActionLogin      = "LOGIN"
	ActionLogout     = "LOGOUT"
)

// SystemActor attributes activity that happened outside a user session.
const SystemActor = "System"

// MaxActivityEntries caps the activity slot; older entries are discarded on
// every append.
const MaxActivityEntries = 50

// Activity is one immutable audit entry. The collection is ordered newest
// first.
type Activity struct {
	ID          int64     `bson:"id" json:"id"`
	Action      string    `bson:"action" json:"action"`
	Description string    `bson:"description" json:"description"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	User        string    `bson:"user" json:"user"`
}
