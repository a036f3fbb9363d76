package models

// EventArtist is the pivot row behind the events/artists many-to-many
// association. The composite primary key doubles as the uniqueness
// constraint on the pair.
type EventArtist struct {
	EventID  uint64 `gorm:"primarykey" json:"event_id"`
	ArtistID uint64 `gorm:"primarykey" json:"artist_id"`
}
