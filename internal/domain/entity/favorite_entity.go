package entity

import "time"

// Favorite is a user's saved reference to one catalog work.
// ComposerID and OpusWorkID live in the catalog's id space; Epoch is copied
// from the composer at the moment the favorite was added.
type Favorite struct {
	ID         int64
	UserID     int64
	ComposerID int64
	OpusWorkID int64
	Title      string
	Genre      string
	Epoch      string
	CreatedAt  time.Time
}
