package store

import (
	"errors"
	"reflect"
	"testing"
)

func TestMemStoreUserCRUD(t *testing.T) {
	s := NewMemStore()

	created, err := s.CreateUser(User{ID: "u-1", Name: "Ada", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID != "u-1" {
		t.Errorf("id = %q, want supplied id preserved", created.ID)
	}

	got, err := s.GetUser("u-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got != created {
		t.Errorf("GetUser = %+v, want %+v", got, created)
	}

	updated, err := s.UpdateUser("u-1", map[string]any{"name": "Ada L."})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Name != "Ada L." || updated.Email != "ada@example.com" {
		t.Errorf("updated = %+v, want name changed and email kept", updated)
	}

	if err := s.DeleteUser("u-1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := s.GetUser("u-1"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser after delete = %v, want ErrUserNotFound", err)
	}
}

func TestMemStoreGeneratesIDWhenEmpty(t *testing.T) {
	s := NewMemStore()
	u, err := s.CreateUser(User{Name: "Grace"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Error("id empty, want generated")
	}
}

func TestMemStoreRejectsDuplicateID(t *testing.T) {
	s := NewMemStore()
	if _, err := s.CreateUser(User{ID: "u-1"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := s.CreateUser(User{ID: "u-1"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("err = %v, want ErrDuplicateID", err)
	}
}

func TestMemStoreListIdempotent(t *testing.T) {
	s := NewMemStore()
	for _, id := range []string{"a", "b", "c"} {
		if _, err := s.CreateUser(User{ID: id}); err != nil {
			t.Fatalf("CreateUser(%s): %v", id, err)
		}
	}

	first := s.ListUsers()
	second := s.ListUsers()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated listings differ: %v vs %v", first, second)
	}
	if len(first) != 3 || first[0].ID != "a" || first[2].ID != "c" {
		t.Errorf("listing = %v, want insertion order preserved", first)
	}

	// Mutating a returned slice must not affect the store.
	first[0].Name = "mutated"
	if got, _ := s.GetUser("a"); got.Name == "mutated" {
		t.Error("store shared backing array with caller")
	}
}

func TestMemStorePostDefaultsAndUpdate(t *testing.T) {
	s := NewMemStore()
	p, err := s.CreatePost(Post{ID: "p-1", Title: "T", Content: "C", AuthorID: "u-1"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if p.Status != "draft" {
		t.Errorf("status = %q, want draft default", p.Status)
	}

	updated, err := s.UpdatePost("p-1", map[string]any{"status": "published"})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if updated.Status != "published" || updated.Title != "T" {
		t.Errorf("updated = %+v, want status changed and title kept", updated)
	}

	if _, err := s.UpdatePost("p-missing", map[string]any{"title": "x"}); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("err = %v, want ErrPostNotFound", err)
	}
	if err := s.DeletePost("p-missing"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("err = %v, want ErrPostNotFound", err)
	}
}
