package caption

import (
	"context"
	"errors"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Caption{}, &TranslateJob{}); err != nil {
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

func seedCaption(t *testing.T, store Store, user string, createdAt time.Time) uint64 {
	t.Helper()
	c := &Caption{
		Transcript:     "hello",
		TranslatedText: "hola",
		FromLang:       "en",
		ToLang:         "es",
		ProcessingMs:   12,
		UserID:         &user,
		CreatedAt:      createdAt,
	}
	if err := store.InsertCaption(context.Background(), c); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if c.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	return c.ID
}

func TestListCaptionsByUser_NewestFirstAndScoped(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			user := "alice-list-" + name
			base := time.Now().Add(-time.Hour)

			oldID := seedCaption(t, store, user, base)
			newID := seedCaption(t, store, user, base.Add(time.Minute))
			seedCaption(t, store, "someone-else-"+name, base.Add(2*time.Minute))

			caps, err := store.ListCaptionsByUser(ctx, user)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(caps) != 2 {
				t.Fatalf("expected 2 captions, got %d", len(caps))
			}
			if caps[0].ID != newID || caps[1].ID != oldID {
				t.Fatalf("expected newest first, got ids %d, %d", caps[0].ID, caps[1].ID)
			}
		})
	}
}

func TestUpdateTranslatedText_OwnershipEnforced(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			owner := "alice-upd-" + name
			id := seedCaption(t, store, owner, time.Now())

			// wrong owner: absent and unowned look the same
			ok, err := store.UpdateTranslatedText(ctx, id, "mallory", "changed")
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if ok {
				t.Fatalf("expected unowned update to fail")
			}

			ok, err = store.UpdateTranslatedText(ctx, id, owner, "bonjour")
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if !ok {
				t.Fatalf("expected owned update to succeed")
			}

			c, err := store.GetCaption(ctx, id)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if c.TranslatedText != "bonjour" {
				t.Fatalf("expected updated text, got %q", c.TranslatedText)
			}
		})
	}
}

func TestDeleteCaption_AbsentAndUnownedIndistinguishable(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			owner := "alice-del-" + name
			id := seedCaption(t, store, owner, time.Now())

			ok, err := store.DeleteCaption(ctx, id, "mallory")
			if err != nil {
				t.Fatalf("delete unowned: %v", err)
			}
			unownedOK := ok

			ok, err = store.DeleteCaption(ctx, 99999999, owner)
			if err != nil {
				t.Fatalf("delete absent: %v", err)
			}
			if unownedOK != ok || ok {
				t.Fatalf("expected both unowned and absent deletes to report false")
			}

			ok, err = store.DeleteCaption(ctx, id, owner)
			if err != nil {
				t.Fatalf("delete owned: %v", err)
			}
			if !ok {
				t.Fatalf("expected owned delete to succeed")
			}

			if _, err := store.GetCaption(ctx, id); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestListRecentCaptions_Bounded(t *testing.T) {
	store := NewMemStore()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedCaption(t, store, "feed-user", base.Add(time.Duration(i)*time.Minute))
	}

	caps, err := store.ListRecentCaptions(context.Background(), 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(caps) != 3 {
		t.Fatalf("expected 3 captions, got %d", len(caps))
	}
	if !caps[0].CreatedAt.After(caps[1].CreatedAt) || !caps[1].CreatedAt.After(caps[2].CreatedAt) {
		t.Fatalf("expected newest first ordering")
	}
}
