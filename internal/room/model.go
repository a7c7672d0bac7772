package room

import (
	"time"

	"github.com/google/uuid"
)

// Room represents a row in the rooms table: a guest room of the pousada.
// Long descriptions may carry HTML authored in the back office; it is
// sanitized before storage.
type Room struct {
	ID                 uuid.UUID
	NamePT             string
	NameEN             string
	DescriptionPT      string
	DescriptionEN      string
	Capacity           int
	PriceCentsPerNight int
	ImageURLs          []string
	Available          bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
