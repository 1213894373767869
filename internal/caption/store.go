package caption

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("caption not found")

// Store persists captions and translation jobs. Ownership checks for
// update/delete live in the store query itself, so a check-then-write
// race cannot bypass them; "no matching owned row" is the (false, nil)
// result, distinct from a storage failure.
type Store interface {
	InsertCaption(ctx context.Context, cap *Caption) error
	ListCaptionsByUser(ctx context.Context, user string) ([]Caption, error)
	GetCaption(ctx context.Context, id uint64) (*Caption, error)
	UpdateTranslatedText(ctx context.Context, id uint64, user, text string) (bool, error)
	DeleteCaption(ctx context.Context, id uint64, user string) (bool, error)
	ListRecentCaptions(ctx context.Context, limit int) ([]Caption, error)

	CreateJob(ctx context.Context, job *TranslateJob) error
	GetJob(ctx context.Context, id string) (*TranslateJob, error)
	MarkJobRunning(ctx context.Context, id string) error
	MarkJobSucceeded(ctx context.Context, id string, result string) error
	MarkJobFailed(ctx context.Context, id string, errMsg string) error
}
