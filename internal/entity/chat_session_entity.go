package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession lives in a partitioned MongoDB collection keyed by project.
// UserId is the caller-supplied end-user identifier; sessions are always
// listed within one project AND one user.
type ChatSession struct {
	Id        uuid.UUID `bson:"_id"`
	ProjectId uuid.UUID `bson:"project_id"`
	UserId    int64     `bson:"user_id"`
	Title     string    `bson:"title"`
	CreatedAt time.Time `bson:"created_at"`
}
