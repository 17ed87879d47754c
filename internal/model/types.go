package model

// EmailRecord is one inbox item. Records are values and never mutated after
// creation; the store hands out copies.
type EmailRecord struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`  // sender display name
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
	Email string `yaml:"email"` // sender address
}

// RemovedInfo remembers the last removal so it can be undone.
type RemovedInfo struct {
	Record EmailRecord
	Index  int // zero-based position the record occupied
}

// InboxState is a read-only copy of the store handed to renderers.
type InboxState struct {
	Emails  []EmailRecord
	Removed *RemovedInfo // nil when there is nothing to undo
}

// IDs returns the ids of the snapshot's emails in display order.
func (s InboxState) IDs() []string {
	ids := make([]string, len(s.Emails))
	for i, e := range s.Emails {
		ids[i] = e.ID
	}
	return ids
}

// Seed is the inbox a fresh session starts with.
func Seed() []EmailRecord {
	return []EmailRecord{
		{
			ID:    "1",
			Name:  "Taylor Swift",
			Title: "You Belong With Me...",
			Body:  "You are so cool! Can we be besties?",
			Email: "tswift@gmail.com",
		},
	}
}
