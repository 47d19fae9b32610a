// Package store defines the backend persistence contract for users and
// posts, plus an in-memory implementation. Handlers depend only on the
// interfaces so the same routes can target a test double or a real database.
package store

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")
	ErrDuplicateID  = errors.New("id already exists")
)

// User is the stored representation of a user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Post is the stored representation of a post.
type Post struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID string `json:"author_id"`
	Status   string `json:"status"`
}

// UserStore is the persistence contract for users.
type UserStore interface {
	ListUsers() []User
	GetUser(id string) (User, error)
	CreateUser(u User) (User, error)
	UpdateUser(id string, fields map[string]any) (User, error)
	DeleteUser(id string) error
}

// PostStore is the persistence contract for posts.
type PostStore interface {
	ListPosts() []Post
	GetPost(id string) (Post, error)
	CreatePost(p Post) (Post, error)
	UpdatePost(id string, fields map[string]any) (Post, error)
	DeletePost(id string) error
}
