package db_models

import "github.com/google/uuid"

// VoiceCall is one completed voice round trip, kept for the admin analytics.
type VoiceCall struct {
	BaseModel
	AccountID  *uuid.UUID `gorm:"type:uuid;index"`
	Question   string     `gorm:"type:text"`
	Reply      string     `gorm:"type:text"`
	DurationMs int64
	Succeeded  bool `gorm:"index"`
}
