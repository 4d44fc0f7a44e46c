package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"zenjourney/internal/models/request_models"
	resp "zenjourney/internal/models/response_models"
	"zenjourney/pkg/utils"
)

const DefaultVoiceTimeout = 30 * time.Second

type VoiceBackendInterface interface {
	Transcribe(ctx context.Context, audioTranscript string) (string, error)
	AgentResponse(ctx context.Context, transcript string) (string, error)
}

// VoiceBackend talks to the voice agent service.
type VoiceBackend struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	log        *zap.Logger
}

func NewVoiceBackend(baseURL string, timeout time.Duration, httpClient *http.Client, log *zap.Logger) *VoiceBackend {
	if timeout <= 0 {
		timeout = DefaultVoiceTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &VoiceBackend{
		baseURL:    baseURL,
		timeout:    timeout,
		httpClient: httpClient,
		log:        log,
	}
}

func (v *VoiceBackend) Transcribe(ctx context.Context, audioTranscript string) (string, error) {
	var out resp.TranscribeResponse
	if err := v.post(ctx, "/transcribe-real", request_models.TranscribeRequest{AudioTranscript: audioTranscript}, &out); err != nil {
		return "", err
	}
	return out.Transcript, nil
}

func (v *VoiceBackend) AgentResponse(ctx context.Context, transcript string) (string, error) {
	var out resp.AgentResponse
	if err := v.post(ctx, "/agent-response", request_models.AgentRequest{Transcript: transcript}, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

func (v *VoiceBackend) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	res, err := v.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", utils.ErrTimeout, v.timeout)
		}
		return fmt.Errorf("%w: %w", utils.ErrNetwork, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		v.log.Warn("voice backend call failed",
			zap.String("path", path),
			zap.Int("status", res.StatusCode))
		return &utils.UpstreamError{Status: res.StatusCode, Body: string(text)}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &utils.DecodeError{Err: err}
	}
	return nil
}
