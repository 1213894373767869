package caption

import "time"

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// TranslateJob is an asynchronous translation request processed by the
// worker; the caller polls it by ID.
type TranslateJob struct {
	ID string `gorm:"primaryKey;size:26" json:"id"` // ULID length

	UserID   string `gorm:"type:varchar(64);index;not null" json:"-"`
	Text     string `gorm:"type:text;not null" json:"text"`
	FromLang string `gorm:"type:varchar(16);not null" json:"from_lang"`
	ToLang   string `gorm:"type:varchar(16);not null" json:"to_lang"`

	Status JobStatus `gorm:"type:varchar(16);index;not null" json:"status"`

	// Filled when succeeded
	Result *string `gorm:"type:text" json:"result,omitempty"`

	// Filled when failed
	Error *string `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TranslateJob) TableName() string { return "translate_jobs" }
