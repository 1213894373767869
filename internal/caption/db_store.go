package caption

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) InsertCaption(ctx context.Context, cap *Caption) error {
	if cap.CreatedAt.IsZero() {
		cap.CreatedAt = time.Now()
	}
	return s.db.WithContext(ctx).Create(cap).Error
}

func (s *DBStore) ListCaptionsByUser(ctx context.Context, user string) ([]Caption, error) {
	var caps []Caption
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", user).
		Order("created_at DESC, id DESC").
		Find(&caps).Error; err != nil {
		return nil, err
	}
	return caps, nil
}

func (s *DBStore) GetCaption(ctx context.Context, id uint64) (*Caption, error) {
	var c Caption
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdateTranslatedText matches id and owner in one statement; an
// unowned or absent row updates nothing.
func (s *DBStore) UpdateTranslatedText(ctx context.Context, id uint64, user, text string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&Caption{}).
		Where("id = ? AND user_id = ?", id, user).
		Update("translated_text", text)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *DBStore) DeleteCaption(ctx context.Context, id uint64, user string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, user).
		Delete(&Caption{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *DBStore) ListRecentCaptions(ctx context.Context, limit int) ([]Caption, error) {
	if limit <= 0 {
		limit = 20
	}
	var caps []Caption
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&caps).Error; err != nil {
		return nil, err
	}
	return caps, nil
}

func (s *DBStore) CreateJob(ctx context.Context, job *TranslateJob) error {
	return s.db.WithContext(ctx).Create(job).Error
}

func (s *DBStore) GetJob(ctx context.Context, id string) (*TranslateJob, error) {
	var j TranslateJob
	if err := s.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (s *DBStore) MarkJobRunning(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Model(&TranslateJob{}).
		Where("id = ? AND status = ?", id, JobQueued).
		Update("status", JobRunning).Error
}

func (s *DBStore) MarkJobSucceeded(ctx context.Context, id string, result string) error {
	return s.db.WithContext(ctx).Model(&TranslateJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": JobSucceeded,
			"result": result,
			"error":  nil,
		}).Error
}

func (s *DBStore) MarkJobFailed(ctx context.Context, id string, errMsg string) error {
	return s.db.WithContext(ctx).Model(&TranslateJob{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": JobFailed,
			"error":  errMsg,
			"result": nil,
		}).Error
}
