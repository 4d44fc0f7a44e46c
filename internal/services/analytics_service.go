package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.uber.org/zap"

	dbm "zenjourney/internal/models/db_models"
	resp "zenjourney/internal/models/response_models"
	"zenjourney/internal/repositories"
	"zenjourney/pkg/utils"
)

// TopQuestionLimit is how many common questions the dashboard lists.
const TopQuestionLimit = 10

// maxStoredQuestion bounds the question text kept per call, in runes.
const maxStoredQuestion = 500

type AnalyticsServiceInterface interface {
	CallRecorder
	BuildAnalytics(ctx context.Context) (*resp.Analytics, error)
}

type analyticsService struct {
	repo repositories.VoiceCallRepository
	log  *zap.Logger
}

func NewAnalyticsService(repo repositories.VoiceCallRepository, log *zap.Logger) AnalyticsServiceInterface {
	return &analyticsService{repo: repo, log: log}
}

func (s *analyticsService) RecordCall(ctx context.Context, call CallRecord) error {
	question := truncateRunes(strings.TrimSpace(call.Question), maxStoredQuestion)

	row := &dbm.VoiceCall{
		AccountID:  call.AccountID,
		Question:   question,
		Reply:      call.Reply,
		DurationMs: call.Duration.Milliseconds(),
		Succeeded:  call.Succeeded,
	}
	if err := s.repo.Insert(ctx, row); err != nil {
		return fmt.Errorf("%w: insert voice call: %v", utils.ErrDatabaseError, err)
	}
	return nil
}

// truncateRunes keeps at most n runes of s.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// BuildAnalytics reports the total number of voice calls, the average duration
// of successful calls in minutes and the most common questions.
func (s *analyticsService) BuildAnalytics(ctx context.Context) (*resp.Analytics, error) {
	total, err := s.repo.CountCalls(ctx)
	if err != nil {
		s.log.Error("count voice calls", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	avgMs, err := s.repo.AverageDurationMs(ctx)
	if err != nil {
		s.log.Error("average voice call duration", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	rows, err := s.repo.TopQuestions(ctx, TopQuestionLimit)
	if err != nil {
		s.log.Error("top voice questions", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return &resp.Analytics{
		TotalCalls:      total,
		AverageDuration: MinutesFromMs(avgMs),
		CommonQuestions: lo.Map(rows, func(r repositories.QuestionRow, _ int) resp.CommonQuestion {
			return resp.CommonQuestion{Question: r.Question, Count: r.Count}
		}),
	}, nil
}

// MinutesFromMs converts milliseconds to minutes rounded to two decimals.
func MinutesFromMs(ms float64) float64 {
	return math.Round(ms/60000*100) / 100
}
