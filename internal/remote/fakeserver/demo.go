package fakeserver

import (
	"time"

	"github.com/nikbrunner/studio/internal/model"
)

type demoEntry struct {
	user   model.User
	bm     model.Bookmark
	hours  int
	saved  int
	shared int
}

var demoEntries = []demoEntry{
	{
		user: model.User{ID: "u-ellaw", Name: "Ella W.", Username: "ellaw", Email: "ella@example.com"},
		bm: model.Bookmark{
			ID:          "seed-3",
			Title:       "Bookmarking as a team sport",
			URL:         "https://increment.com/tools/team-knowledge-management/",
			Description: "How teams turn scattered links into shared knowledge without adding process.",
			Tags:        []string{"teams", "knowledge", "workflow"},
		},
		hours: 30, saved: 18, shared: 5,
	},
	{
		user: model.User{ID: "u-jonp", Name: "Jon Patel", Username: "jonp", Email: "jon@example.com"},
		bm: model.Bookmark{
			ID:          "seed-2",
			Title:       "The future of social bookmarking",
			URL:         "https://www.nngroup.com/articles/ux-bookmarks/",
			Description: "Research notes on why people save links and what makes them come back to them.",
			Tags:        []string{"product", "ux", "social"},
		},
		hours: 20, saved: 31, shared: 12,
	},
	{
		user: model.User{ID: "u-mayat", Name: "Maya Torres", Username: "mayat", Email: "maya@example.com"},
		bm: model.Bookmark{
			ID:          "seed-1",
			Title:       "API design checklist for microservices",
			URL:         "https://martinfowler.com/articles/microservice-testing/",
			Description: "A practical checklist for contracts, versioning and testing between services.",
			Tags:        []string{"api", "microservices", "design"},
		},
		hours: 6, saved: 24, shared: 8,
	},
}

// SeedDemo fills the server with a few public bookmarks from three demo
// users. Each user signs in with their username as the ID token.
func (s *Server) SeedDemo() {
	now := s.now()
	for _, e := range demoEntries {
		s.AddUser(e.user.Username, e.user)

		b := e.bm
		b.Tags = append([]string(nil), e.bm.Tags...)
		b.CreatedAt = now.Add(-time.Duration(e.hours) * time.Hour)
		b.UpdatedAt = b.CreatedAt
		b.SavedCount = e.saved
		b.SharedCount = e.shared
		s.Seed(e.user.ID, b)
	}
}
