package repositories

import (
	"context"

	"gorm.io/gorm"

	dbm "zenjourney/internal/models/db_models"
)

type VoiceCallRepository interface {
	Insert(ctx context.Context, call *dbm.VoiceCall) error

	CountCalls(ctx context.Context) (int64, error)
	AverageDurationMs(ctx context.Context) (float64, error)
	TopQuestions(ctx context.Context, limit int) ([]QuestionRow, error)
}

type voiceCallRepository struct {
	db *gorm.DB
}

func NewVoiceCallRepository(db *gorm.DB) VoiceCallRepository {
	return &voiceCallRepository{db: db}
}

// ---------- Row helpers ----------
type QuestionRow struct {
	Question string `gorm:"column:question"`
	Count    int64  `gorm:"column:count"`
}

func (r *voiceCallRepository) Insert(ctx context.Context, call *dbm.VoiceCall) error {
	return r.db.WithContext(ctx).Create(call).Error
}

func (r *voiceCallRepository) CountCalls(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&dbm.VoiceCall{}).Count(&n).Error
	return n, err
}

// AverageDurationMs averages successful round trips only.
func (r *voiceCallRepository) AverageDurationMs(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).
		Model(&dbm.VoiceCall{}).
		Where("succeeded = ?", true).
		Select("COALESCE(AVG(duration_ms), 0)").
		Scan(&avg).Error
	return avg, err
}

// TopQuestions groups questions case-insensitively, most asked first.
func (r *voiceCallRepository) TopQuestions(ctx context.Context, limit int) ([]QuestionRow, error) {
	var rows []QuestionRow
	err := r.db.WithContext(ctx).
		Model(&dbm.VoiceCall{}).
		Select("MIN(question) AS question, COUNT(*) AS count").
		Where("question <> ''").
		Group("LOWER(TRIM(question))").
		Order("count DESC, question ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
