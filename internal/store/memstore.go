package store

import (
	"sync"

	"github.com/google/uuid"
)

// MemStore holds users and posts in memory behind a mutex. Insertion order
// is preserved so repeated listings with no intervening writes are
// identical.
type MemStore struct {
	mu    sync.RWMutex
	users []User
	posts []Post
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

// --- Users ---

func (s *MemStore) ListUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

func (s *MemStore) GetUser(id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *MemStore) CreateUser(u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	for _, existing := range s.users {
		if existing.ID == u.ID {
			return User{}, ErrDuplicateID
		}
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemStore) UpdateUser(id string, fields map[string]any) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if name, ok := fields["name"].(string); ok {
			s.users[i].Name = name
		}
		if email, ok := fields["email"].(string); ok {
			s.users[i].Email = email
		}
		return s.users[i], nil
	}
	return User{}, ErrUserNotFound
}

func (s *MemStore) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return ErrUserNotFound
}

// --- Posts ---

func (s *MemStore) ListPosts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *MemStore) GetPost(id string) (Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return Post{}, ErrPostNotFound
}

func (s *MemStore) CreatePost(p Post) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = "draft"
	}
	for _, existing := range s.posts {
		if existing.ID == p.ID {
			return Post{}, ErrDuplicateID
		}
	}
	s.posts = append(s.posts, p)
	return p, nil
}

func (s *MemStore) UpdatePost(id string, fields map[string]any) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		if title, ok := fields["title"].(string); ok {
			s.posts[i].Title = title
		}
		if content, ok := fields["content"].(string); ok {
			s.posts[i].Content = content
		}
		if status, ok := fields["status"].(string); ok {
			s.posts[i].Status = status
		}
		return s.posts[i], nil
	}
	return Post{}, ErrPostNotFound
}

func (s *MemStore) DeletePost(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return nil
		}
	}
	return ErrPostNotFound
}
