package caption

import (
	"context"
	"errors"
	"testing"

	"github.com/polyglotcap/captions/internal/speech"
	"github.com/polyglotcap/captions/internal/translate"
)

func TestProcessAudio_StubPipelineNoPersist(t *testing.T) {
	store := NewMemStore()
	svc := NewService(store, speech.Stub{}, translate.Stub{}, false)

	res, err := svc.ProcessAudio(context.Background(), []byte("fake webm"), "en", "es", nil, "alice")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if res.Transcript != "stub transcript 1" {
		t.Fatalf("unexpected transcript: %q", res.Transcript)
	}
	if res.TranslatedText != "[es] stub transcript 1" {
		t.Fatalf("unexpected translation: %q", res.TranslatedText)
	}
	if res.ProcessingMs < 0 {
		t.Fatalf("expected non-negative processing time, got %d", res.ProcessingMs)
	}
	if res.CaptionID != nil {
		t.Fatalf("expected no persisted record with logging disabled")
	}

	recent, err := store.ListRecentCaptions(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("expected empty store, got %d records", len(recent))
	}
}

func TestProcessAudio_PersistsWhenEnabled(t *testing.T) {
	store := NewDBStore(openTestDB(t))
	svc := NewService(store, speech.Stub{}, translate.Stub{}, true)

	sid := "session-42"
	res, err := svc.ProcessAudio(context.Background(), []byte("fake webm"), "en", "fr", &sid, "alice-persist")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.CaptionID == nil {
		t.Fatalf("expected persisted record id")
	}

	c, err := store.GetCaption(context.Background(), *res.CaptionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Transcript != res.Transcript || c.TranslatedText != res.TranslatedText {
		t.Fatalf("stored record does not match response: %+v", c)
	}
	if c.UserID == nil || *c.UserID != "alice-persist" {
		t.Fatalf("expected owner to be recorded, got %v", c.UserID)
	}
	if c.SessionID == nil || *c.SessionID != sid {
		t.Fatalf("expected session id to be recorded, got %v", c.SessionID)
	}
}

type failingTranslator struct{}

func (failingTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	return "", errors.New("provider down")
}

func TestProcessAudio_TranslatorFailureContained(t *testing.T) {
	svc := NewService(NewMemStore(), speech.Stub{}, failingTranslator{}, false)

	res, err := svc.ProcessAudio(context.Background(), []byte("x"), "en", "es", nil, "alice")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.TranslatedText != "[es] stub transcript 1" {
		t.Fatalf("expected echo fallback, got %q", res.TranslatedText)
	}
}

func TestManualSave_Persists(t *testing.T) {
	store := NewMemStore()
	svc := NewService(store, speech.Stub{}, translate.Stub{}, false)

	id, err := svc.ManualSave(context.Background(), "alice", "hello", "hola", "en", "es")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected assigned id")
	}

	caps, err := svc.ListForUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(caps) != 1 || caps[0].Transcript != "hello" || caps[0].ProcessingMs != 0 {
		t.Fatalf("unexpected saved caption: %+v", caps)
	}
}

func TestTranslateJob_Lifecycle(t *testing.T) {
	store := NewDBStore(openTestDB(t))
	svc := NewService(store, speech.Stub{}, translate.Stub{}, false)
	ctx := context.Background()

	job, err := svc.EnqueueTranslate(ctx, "alice-job", "stub transcript 1", "en", "es")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if job.Status != JobQueued || len(job.ID) != 26 {
		t.Fatalf("unexpected queued job: %+v", job)
	}

	if err := svc.ProcessJob(ctx, job.ID); err != nil {
		t.Fatalf("process job: %v", err)
	}

	done, err := svc.GetJobForUser(ctx, "alice-job", job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if done.Status != JobSucceeded {
		t.Fatalf("expected succeeded, got %s", done.Status)
	}
	if done.Result == nil || *done.Result != "[es] stub transcript 1" {
		t.Fatalf("unexpected result: %v", done.Result)
	}

	// other users cannot see the job
	if _, err := svc.GetJobForUser(ctx, "mallory", job.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign job, got %v", err)
	}
}

func TestProcessJob_FailureMarked(t *testing.T) {
	store := NewMemStore()
	svc := NewService(store, speech.Stub{}, failingTranslator{}, false)
	ctx := context.Background()

	job, err := svc.EnqueueTranslate(ctx, "alice", "text", "en", "es")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := svc.ProcessJob(ctx, job.ID); err == nil {
		t.Fatalf("expected job processing to report the failure")
	}

	failed, err := svc.GetJobForUser(ctx, "alice", job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if failed.Status != JobFailed || failed.Error == nil {
		t.Fatalf("expected failed job with error, got %+v", failed)
	}
}
