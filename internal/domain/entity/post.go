package entity

import (
	"regexp"
	"strings"
	"time"
)

// Post is an article authored by an admin.
type Post struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Category  string
	Slug      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]`)

// Slugify derives a URL slug from a post title.
func Slugify(title string) string {
	s := strings.ToLower(strings.Join(strings.Fields(title), "-"))
	return slugStrip.ReplaceAllString(s, "")
}
