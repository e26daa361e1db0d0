package models

import "time"

// Schedule is a named, iconified booking calendar identified by a
// human-readable slug. Schedules are immutable after creation; the only
// mutation is full deletion.
type Schedule struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Icon      string    `db:"icon" json:"icon"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
