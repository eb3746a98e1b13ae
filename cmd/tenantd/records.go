package main

import "time"

// Widget is a stand-in tenant-owned record shape: whatever a real caller's
// feature handlers query for, this core only needs the shape's field names
// (via query.FieldNames) to build an allow-list and a pgx row decoder. It
// exists here purely to exercise the paginated executor end-to-end; actual
// record shapes live in the caller's own domain package.
type Widget struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Status    string    `json:"status" db:"status"`
	Confirmed bool      `json:"confirmed" db:"confirmed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
