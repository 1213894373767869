package caption

import (
	"context"
	"log"
	"time"

	"github.com/polyglotcap/captions/internal/common"
	"github.com/polyglotcap/captions/internal/speech"
	"github.com/polyglotcap/captions/internal/translate"
)

// Service runs the caption pipeline: transcribe, translate, optional
// persistence. Adapter failures are contained by their fallbacks; a
// persistence failure on the pipeline path is logged but never fails
// the request.
type Service struct {
	store      Store
	transcribe speech.Transcriber
	translator translate.Translator
	persist    bool
}

func NewService(store Store, tr speech.Transcriber, tl translate.Translator, persist bool) *Service {
	return &Service{store: store, transcribe: tr, translator: tl, persist: persist}
}

type Result struct {
	Transcript     string
	TranslatedText string
	FromLang       string
	ToLang         string
	ProcessingMs   int64
	CaptionID      *uint64
}

// ProcessAudio is the pipeline for one uploaded clip. Stages run
// strictly in order; worst case output is the canned transcript with
// an echoed translation.
func (s *Service) ProcessAudio(ctx context.Context, audio []byte, fromLang, toLang string, sessionID *string, user string) (*Result, error) {
	start := time.Now()

	transcript, err := s.transcribe.Transcribe(ctx, audio, fromLang)
	if err != nil {
		log.Printf("caption: transcribe failed, using canned transcript: %v", err)
		transcript = speech.CannedTranscript(fromLang)
	}

	translated, err := s.translator.Translate(ctx, transcript, fromLang, toLang)
	if err != nil {
		log.Printf("caption: translate failed, using stub: %v", err)
		translated = translate.Fallback(transcript, fromLang, toLang)
	}

	res := &Result{
		Transcript:     transcript,
		TranslatedText: translated,
		FromLang:       fromLang,
		ToLang:         toLang,
		ProcessingMs:   time.Since(start).Milliseconds(),
	}

	if s.persist {
		c := &Caption{
			Transcript:     transcript,
			TranslatedText: translated,
			FromLang:       fromLang,
			ToLang:         toLang,
			ProcessingMs:   res.ProcessingMs,
			SessionID:      sessionID,
			UserID:         &user,
		}
		if err := s.store.InsertCaption(ctx, c); err != nil {
			// best-effort: the caller already has its result
			log.Printf("caption: persist failed: %v", err)
		} else {
			res.CaptionID = &c.ID
		}
	}

	return res, nil
}

func (s *Service) ManualTranslate(ctx context.Context, text, fromLang, toLang string) string {
	translated, err := s.translator.Translate(ctx, text, fromLang, toLang)
	if err != nil {
		log.Printf("caption: manual translate failed, using stub: %v", err)
		return translate.Fallback(text, fromLang, toLang)
	}
	return translated
}

// ManualSave persists caller-supplied text. Unlike the pipeline path,
// a storage failure here is the operation failing.
func (s *Service) ManualSave(ctx context.Context, user, transcript, translated, fromLang, toLang string) (uint64, error) {
	c := &Caption{
		Transcript:     transcript,
		TranslatedText: translated,
		FromLang:       fromLang,
		ToLang:         toLang,
		ProcessingMs:   0,
		UserID:         &user,
	}
	if err := s.store.InsertCaption(ctx, c); err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (s *Service) ListForUser(ctx context.Context, user string) ([]Caption, error) {
	return s.store.ListCaptionsByUser(ctx, user)
}

func (s *Service) UpdateTranslatedText(ctx context.Context, id uint64, user, text string) (bool, error) {
	return s.store.UpdateTranslatedText(ctx, id, user, text)
}

func (s *Service) Delete(ctx context.Context, id uint64, user string) (bool, error) {
	return s.store.DeleteCaption(ctx, id, user)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Caption, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.ListRecentCaptions(ctx, limit)
}

// EnqueueTranslate records a queued translation job; publishing to the
// broker is the caller's step.
func (s *Service) EnqueueTranslate(ctx context.Context, user, text, fromLang, toLang string) (*TranslateJob, error) {
	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}
	job := &TranslateJob{
		ID:       id,
		UserID:   user,
		Text:     text,
		FromLang: fromLang,
		ToLang:   toLang,
		Status:   JobQueued,
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// GetJobForUser hides other users' jobs behind ErrNotFound.
func (s *Service) GetJobForUser(ctx context.Context, user, id string) (*TranslateJob, error) {
	j, err := s.store.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.UserID != user {
		return nil, ErrNotFound
	}
	return j, nil
}

// ProcessJob is the worker side of the async translation path.
func (s *Service) ProcessJob(ctx context.Context, jobID string) error {
	if err := s.store.MarkJobRunning(ctx, jobID); err != nil {
		return err
	}

	j, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	translated, err := s.translator.Translate(ctx, j.Text, j.FromLang, j.ToLang)
	if err != nil {
		_ = s.store.MarkJobFailed(ctx, jobID, err.Error())
		return err
	}

	return s.store.MarkJobSucceeded(ctx, jobID, translated)
}
