package board

import "github.com/mmynk/msgboard/internal/models"

// SampleGroups returns the demo board: two groups with two messages each.
// Nothing loads these implicitly.
func SampleGroups() []models.Group {
	return []models.Group{
		{
			ID:    "1",
			Title: "Orders",
			Messages: []models.Message{
				{ID: "1-1", Text: "Order #1234 confirmed", Timestamp: "10:30 AM"},
				{ID: "1-2", Text: "Order #1235 shipped", Timestamp: "2:15 PM"},
			},
		},
		{
			ID:    "2",
			Title: "Promotions",
			Messages: []models.Message{
				{ID: "2-1", Text: "50% off this weekend!", Timestamp: "9:00 AM"},
				{ID: "2-2", Text: "Buy 1 Get 1 Free!", Timestamp: "11:45 AM"},
			},
		},
	}
}
