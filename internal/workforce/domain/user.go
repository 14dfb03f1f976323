package domain

import "time"

// DefaultUserCreatedAt substitutes a missing or unparseable registration date
var DefaultUserCreatedAt = time.Date(2025, time.August, 7, 0, 0, 0, 0, time.UTC)

// UserRecord is one registered user from the user export
type UserRecord struct {
	UserID       string    `json:"userId" db:"user_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	RawCreatedAt string    `json:"rawCreatedAt,omitempty" db:"raw_created_at"`
}

// DateRange is an optional [From, To] window. A zero time means unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// DayCount is the number of users registered on one UTC day
type DayCount struct {
	Date  string `json:"date" db:"day"`
	Count int64  `json:"count" db:"count"`
}

// UserGrowth summarizes registrations for a window
type UserGrowth struct {
	Total        int64      `json:"total"`
	TotalBefore  int64      `json:"totalBefore"`
	Distribution []DayCount `json:"distribution"`
}
