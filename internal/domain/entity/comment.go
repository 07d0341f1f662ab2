package entity

import "time"

// MaxCommentLength caps comment content.
const MaxCommentLength = 200

// Comment belongs to a post. Likes is the set of user ids that liked the
// comment; a user id appears at most once. NumberOfLikes is denormalized and
// must equal len(Likes) after every mutation — the repository keeps both in
// one atomic write.
type Comment struct {
	ID            string
	PostID        string
	UserID        string
	Content       string
	Likes         []string
	NumberOfLikes int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LikedBy reports whether userID is in the likers set.
func (c *Comment) LikedBy(userID string) bool {
	for _, id := range c.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
