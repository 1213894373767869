package caption

import "time"

type Caption struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Transcript     string    `gorm:"type:text;not null" json:"transcript"`
	TranslatedText string    `gorm:"type:text;not null" json:"translated_text"`
	FromLang       string    `gorm:"type:varchar(16);not null" json:"from_lang"`
	ToLang         string    `gorm:"type:varchar(16);not null" json:"to_lang"`
	ProcessingMs   int64     `json:"processing_ms"`
	SessionID      *string   `gorm:"type:varchar(64);index" json:"session_id,omitempty"`
	UserID         *string   `gorm:"type:varchar(64);index" json:"-"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (Caption) TableName() string { return "captions" }
