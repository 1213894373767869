package caption

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is the in-memory repository used when no DSN is configured
// and in tests. Same contract as DBStore, guarded by a mutex.
type MemStore struct {
	mu       sync.Mutex
	nextID   uint64
	captions map[uint64]Caption
	jobs     map[string]TranslateJob
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextID:   1,
		captions: make(map[uint64]Caption),
		jobs:     make(map[string]TranslateJob),
	}
}

func (s *MemStore) InsertCaption(ctx context.Context, cap *Caption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cap.ID = s.nextID
	s.nextID++
	if cap.CreatedAt.IsZero() {
		cap.CreatedAt = time.Now()
	}
	s.captions[cap.ID] = *cap
	return nil
}

func newestFirst(caps []Caption) {
	sort.Slice(caps, func(i, j int) bool {
		if !caps[i].CreatedAt.Equal(caps[j].CreatedAt) {
			return caps[i].CreatedAt.After(caps[j].CreatedAt)
		}
		return caps[i].ID > caps[j].ID
	})
}

func (s *MemStore) ListCaptionsByUser(ctx context.Context, user string) ([]Caption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Caption
	for _, c := range s.captions {
		if c.UserID != nil && *c.UserID == user {
			out = append(out, c)
		}
	}
	newestFirst(out)
	return out, nil
}

func (s *MemStore) GetCaption(ctx context.Context, id uint64) (*Caption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.captions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (s *MemStore) UpdateTranslatedText(ctx context.Context, id uint64, user, text string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.captions[id]
	if !ok || c.UserID == nil || *c.UserID != user {
		return false, nil
	}
	c.TranslatedText = text
	s.captions[id] = c
	return true, nil
}

func (s *MemStore) DeleteCaption(ctx context.Context, id uint64, user string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.captions[id]
	if !ok || c.UserID == nil || *c.UserID != user {
		return false, nil
	}
	delete(s.captions, id)
	return true, nil
}

func (s *MemStore) ListRecentCaptions(ctx context.Context, limit int) ([]Caption, error) {
	if limit <= 0 {
		limit = 20
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Caption, 0, len(s.captions))
	for _, c := range s.captions {
		out = append(out, c)
	}
	newestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemStore) CreateJob(ctx context.Context, job *TranslateJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	s.jobs[job.ID] = *job
	return nil
}

func (s *MemStore) GetJob(ctx context.Context, id string) (*TranslateJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := j
	return &cp, nil
}

func (s *MemStore) MarkJobRunning(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok || j.Status != JobQueued {
		return nil
	}
	j.Status = JobRunning
	j.UpdatedAt = time.Now()
	s.jobs[id] = j
	return nil
}

func (s *MemStore) MarkJobSucceeded(ctx context.Context, id string, result string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil
	}
	j.Status = JobSucceeded
	j.Result = &result
	j.Error = nil
	j.UpdatedAt = time.Now()
	s.jobs[id] = j
	return nil
}

func (s *MemStore) MarkJobFailed(ctx context.Context, id string, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil
	}
	j.Status = JobFailed
	j.Error = &errMsg
	j.Result = nil
	j.UpdatedAt = time.Now()
	s.jobs[id] = j
	return nil
}
