package core

import "time"

// Record captures one fully processed action for the simulation history.
// ActionCount is the processed-action counter value after this action's join
// barrier completed, so records are strictly ordered by it.
type Record struct {
	ID          string    `json:"id"`
	Action      Action    `json:"action"`
	ActionCount int       `json:"action_count"`
	Timestamp   time.Time `json:"timestamp"`
}
