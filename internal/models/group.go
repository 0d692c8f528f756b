package models

// Group represents a named list of messages.
//
// Title uniqueness is not enforced. Two groups with the same title share
// the same message storage key.
type Group struct {
	// ID is the unique identifier for the group (UUIDv7 format).
	ID string `json:"id"`

	// Title is the display name of the group (e.g., "Orders", "Promotions").
	// Never empty; stored trimmed.
	Title string `json:"title"`

	// Messages is the list the group was created with.
	// It seeds the group's message scope when nothing is persisted for it yet.
	Messages []Message `json:"messages"`
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	g.Messages = CloneMessages(g.Messages)
	return g
}

// Selection is what a group hands to its message scope when it is opened.
// No data flows back from the message scope to the group list.
type Selection struct {
	// Title identifies the message scope and derives its storage key.
	Title string `json:"title"`

	// Seed is used when no persisted message list exists for Title.
	Seed []Message `json:"messages"`
}
