package users

import (
	"context"
	"errors"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"db":  NewDBStore(openTestDB(t)),
		"mem": NewMemStore(),
	}
}

func TestCreateAndGet(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			username := "alice-" + name

			if err := store.Create(ctx, &User{Username: username, PasswordHash: "h1"}); err != nil {
				t.Fatalf("create: %v", err)
			}

			u, err := store.GetByUsername(ctx, username)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if u.Username != username || u.PasswordHash != "h1" {
				t.Fatalf("unexpected user: %+v", u)
			}
		})
	}
}

func TestCreate_DuplicateRejected(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			username := "bob-" + name

			if err := store.Create(ctx, &User{Username: username, PasswordHash: "h1"}); err != nil {
				t.Fatalf("first create: %v", err)
			}
			err := store.Create(ctx, &User{Username: username, PasswordHash: "h2"})
			if !errors.Is(err, ErrUsernameTaken) {
				t.Fatalf("expected ErrUsernameTaken, got %v", err)
			}

			// first registration wins
			u, err := store.GetByUsername(ctx, username)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if u.PasswordHash != "h1" {
				t.Fatalf("expected original hash to survive, got %q", u.PasswordHash)
			}
		})
	}
}

func TestGet_MissingIsNotFound(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.GetByUsername(context.Background(), "nobody-"+name)
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}
