package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"zenjourney/internal/models/request_models"
	resp "zenjourney/internal/models/response_models"
	"zenjourney/pkg/utils"
)

// DefaultPlanTimeout bounds a single plan-generation request.
const DefaultPlanTimeout = 60 * time.Second

// maxErrorBody caps how much of a failed response is kept for the user message.
const maxErrorBody = 4 << 10

type PlanClientInterface interface {
	RequestPlan(ctx context.Context, input request_models.TripRequest, bearerToken string) (*resp.TravelPlan, error)
}

type PlanClient struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	log        *zap.Logger
}

func NewPlanClient(endpoint string, timeout time.Duration, httpClient *http.Client, log *zap.Logger) *PlanClient {
	if timeout <= 0 {
		timeout = DefaultPlanTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &PlanClient{
		endpoint:   endpoint,
		timeout:    timeout,
		httpClient: httpClient,
		log:        log,
	}
}

// ValidateTripRequest checks the request contract before any network call.
func ValidateTripRequest(input request_models.TripRequest) error {
	if strings.TrimSpace(input.Destination) == "" {
		return &utils.ValidationError{Field: "destination", Message: "is required"}
	}
	start, err := utils.ParseISODate(input.StartDate)
	if err != nil {
		return &utils.ValidationError{Field: "start_date", Message: "must be a YYYY-MM-DD date"}
	}
	end, err := utils.ParseISODate(input.EndDate)
	if err != nil {
		return &utils.ValidationError{Field: "end_date", Message: "must be a YYYY-MM-DD date"}
	}
	if end.Before(start) {
		return &utils.ValidationError{Field: "end_date", Message: "must not be before start_date"}
	}
	if input.Budget < 0 {
		return &utils.ValidationError{Field: "budget", Message: "must not be negative"}
	}
	return nil
}

// RequestPlan posts the trip to the planning service and decodes the plan.
// An empty bearerToken sends the request without an Authorization header.
func (p *PlanClient) RequestPlan(ctx context.Context, input request_models.TripRequest, bearerToken string) (*resp.TravelPlan, error) {
	if err := ValidateTripRequest(input); err != nil {
		return nil, err
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode trip request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build plan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	} else {
		p.log.Warn("no authenticated user, skipping Authorization header",
			zap.Error(utils.ErrAuthUnavailable))
	}

	started := time.Now()
	res, err := p.httpClient.Do(req)
	if err != nil {
		return nil, p.transportError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		p.log.Warn("plan request failed",
			zap.Int("status", res.StatusCode),
			zap.String("body", string(text)))
		return nil, &utils.UpstreamError{Status: res.StatusCode, Body: string(text)}
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, p.transportError(ctx, err)
	}

	var plan resp.TravelPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, &utils.DecodeError{Err: err}
	}
	if err := plan.Validate(); err != nil {
		return nil, &utils.DecodeError{Err: err}
	}

	p.log.Info("plan received",
		zap.String("destination", plan.Destination),
		zap.Int("days", len(plan.Itinerary)),
		zap.Duration("elapsed", time.Since(started)))

	return &plan, nil
}

func (p *PlanClient) transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", utils.ErrTimeout, p.timeout)
	}
	return fmt.Errorf("%w: %w", utils.ErrNetwork, err)
}
