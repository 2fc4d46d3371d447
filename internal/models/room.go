package models

import "time"

// Room represents a physical room. Capacity and type are descriptive
// only; the generator treats rooms as interchangeable resources.
type Room struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Capacity     int       `db:"capacity" json:"capacity"`
	RoomType     string    `db:"room_type" json:"room_type"`
	HasProjector bool      `db:"has_projector" json:"has_projector"`
	HasLab       bool      `db:"has_lab" json:"has_lab"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// RoomFilter captures supported filters for listing rooms.
type RoomFilter struct {
	RoomType  string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
