package storage

import "time"

type APIKey struct {
	ID        int64     `db:"id"`
	Key       string    `db:"key"`
	CreatedAt time.Time `db:"created_at"`
}

type SiteInfo struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
}

type Component struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Website   string    `db:"website"`
	CreatedAt time.Time `db:"created_at"`
}

// StatusUpdate is one reported status of a component for a calendar day.
// Date is the effective date in YYYY-MM-DD form, CreatedAt is when it was recorded.
type StatusUpdate struct {
	ID          int64     `db:"id"`
	ComponentID int64     `db:"component_id"`
	Status      string    `db:"status"`
	Date        string    `db:"date"`
	CreatedAt   time.Time `db:"created_at"`
}
