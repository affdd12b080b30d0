package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Backup is the full-snapshot export bundle. Attendance is reserved and
// carried through verbatim.
type Backup struct {
	Users      []User          `json:"users"`
	Inventory  []Medicine      `json:"inventory"`
	Attendance json.RawMessage `json:"attendance"`
	Activity   []Activity      `json:"activity"`
	ExportedAt time.Time       `json:"exportedAt"`
}

// Filename returns the download name for the bundle, derived from the
// export date.
func (b Backup) Filename() string {
	return fmt.Sprintf("medflow_backup_%s.json", b.ExportedAt.Format(DateLayout))
}
