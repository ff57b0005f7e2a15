package session

import "github.com/google/uuid"

// Item is one piece of content in the playback queue.
type Item struct {
	ID    string
	Title string
	Text  string
}

// NewItem creates an item with a fresh identity.
func NewItem(title, text string) Item {
	return Item{ID: uuid.NewString(), Title: title, Text: text}
}
