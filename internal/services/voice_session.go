package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"zenjourney/internal/models/request_models"
	resp "zenjourney/internal/models/response_models"
	"zenjourney/pkg/utils"
)

// FallbackReply is shown when the voice round trip fails.
const FallbackReply = "Sorry, there was an error processing your request. Please ensure the backend server is running."

const msgUnsupported = "Your browser does not support speech recognition."

type VoiceState string

const (
	VoiceIdle      VoiceState = "idle"
	VoiceListening VoiceState = "listening"
	VoiceReviewing VoiceState = "reviewing"
	VoiceSending   VoiceState = "sending"
	VoiceError     VoiceState = "error"
)

// Capture is a speech capture session owned by the page.
type Capture interface {
	Available() bool
	Start() error
	Stop()
}

// CallRecord is one completed voice round trip.
type CallRecord struct {
	AccountID *uuid.UUID
	Question  string
	Reply     string
	Duration  time.Duration
	Succeeded bool
}

type CallRecorder interface {
	RecordCall(ctx context.Context, call CallRecord) error
}

type VoiceServiceInterface interface {
	NewSession(identity *utils.Identity, notify func(resp.VoiceSnapshot)) *VoiceSession
}

type VoiceService struct {
	backend  VoiceBackendInterface
	speaker  Synthesizer
	recorder CallRecorder
	log      *zap.Logger
}

func NewVoiceService(backend VoiceBackendInterface, speaker Synthesizer, recorder CallRecorder, log *zap.Logger) VoiceServiceInterface {
	if speaker == nil {
		speaker = BrowserSynthesizer{}
	}
	return &VoiceService{
		backend:  backend,
		speaker:  speaker,
		recorder: recorder,
		log:      log,
	}
}

// NewSession starts an idle session. notify receives a snapshot after every change
// and must not block.
func (v *VoiceService) NewSession(identity *utils.Identity, notify func(resp.VoiceSnapshot)) *VoiceSession {
	s := &VoiceSession{
		ID:       uuid.NewString(),
		state:    VoiceIdle,
		backend:  v.backend,
		speaker:  v.speaker,
		recorder: v.recorder,
		notify:   notify,
		log:      v.log,
		now:      time.Now,
	}
	if identity != nil {
		id := identity.UserID
		s.accountID = &id
	}
	return s
}

// VoiceSession is the state machine behind one voice page.
type VoiceSession struct {
	ID string

	mu        sync.Mutex
	state     VoiceState
	acc       TranscriptAcc
	final     string
	edited    bool
	said      string
	reply     string
	utterance Utterance
	errMsg    string
	capture   Capture
	capturing bool
	closed    bool

	pubMu  sync.Mutex
	notify func(resp.VoiceSnapshot)

	backend   VoiceBackendInterface
	speaker   Synthesizer
	recorder  CallRecorder
	accountID *uuid.UUID
	log       *zap.Logger
	now       func() time.Time
}

func (s *VoiceSession) State() VoiceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start begins capture. Without a usable capture the session keeps its state
// and reports the missing capability. Only one capture runs at a time, including
// while a reviewed transcript is still receiving final fragments.
func (s *VoiceSession) Start(capture Capture) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return utils.ErrInvalidTransition
	case s.state == VoiceListening, s.capturing:
		s.mu.Unlock()
		return utils.ErrCaptureActive
	case s.state == VoiceSending:
		s.mu.Unlock()
		return utils.ErrInvalidTransition
	}

	if capture == nil || !capture.Available() {
		s.errMsg = msgUnsupported
		s.mu.Unlock()
		s.publish()
		return utils.ErrCapabilityUnavailable
	}
	s.capture = capture
	err := s.beginCaptureLocked()
	s.mu.Unlock()

	s.publish()
	return err
}

// Recognize applies a recognition event. While listening, the first final text
// moves the session to Reviewing. Final fragments that arrive before the capture
// ends are appended as long as the transcript has not been edited.
func (s *VoiceSession) Recognize(ev RecognitionEvent) error {
	s.mu.Lock()
	switch {
	case s.state == VoiceListening:
		s.acc = ReduceTranscript(s.acc, ev)
		if s.acc.Final != "" {
			s.final = s.acc.Final
			s.state = VoiceReviewing
		}
	case s.state == VoiceReviewing && s.capturing && !s.edited:
		finals := lo.Filter(ev.Results, func(r request_models.RecognitionResult, _ int) bool { return r.IsFinal })
		s.acc = ReduceTranscript(s.acc, RecognitionEvent{Results: finals})
		s.final = s.acc.Final
	default:
		s.mu.Unlock()
		return utils.ErrInvalidTransition
	}
	s.mu.Unlock()

	s.publish()
	return nil
}

// End is called when the page reports that capture stopped on its own.
func (s *VoiceSession) End() {
	s.mu.Lock()
	s.capturing = false
	if s.state == VoiceListening && s.acc.Final == "" {
		s.state = VoiceIdle
		s.acc = TranscriptAcc{}
	}
	s.mu.Unlock()

	s.publish()
}

// Fail records a recognition error reported by the page.
func (s *VoiceSession) Fail(message string) {
	s.mu.Lock()
	s.stopCaptureLocked()
	s.state = VoiceError
	s.errMsg = "Error occurred while listening: " + message
	s.mu.Unlock()

	s.publish()
}

// Edit replaces the transcript under review.
func (s *VoiceSession) Edit(text string) error {
	s.mu.Lock()
	if s.state != VoiceReviewing {
		s.mu.Unlock()
		return utils.ErrInvalidTransition
	}
	s.final = text
	s.edited = true
	s.mu.Unlock()

	s.publish()
	return nil
}

// Send runs the transcription call and then the agent call for the reviewed
// transcript. It blocks until both have finished or one has failed.
func (s *VoiceSession) Send(ctx context.Context) error {
	s.mu.Lock()
	if s.state != VoiceReviewing {
		s.mu.Unlock()
		return utils.ErrInvalidTransition
	}
	text := strings.TrimSpace(s.final)
	if text == "" {
		s.mu.Unlock()
		return &utils.ValidationError{Field: "transcript", Message: "is empty"}
	}
	s.stopCaptureLocked()
	s.state = VoiceSending
	s.errMsg = ""
	s.reply = ""
	s.utterance = Utterance{}
	s.mu.Unlock()
	s.publish()

	started := s.now()
	reply, failure, err := s.converse(ctx, text)
	elapsed := s.now().Sub(started)
	s.record(ctx, text, reply, elapsed, err == nil)

	var utterance Utterance
	if err == nil {
		utterance = s.speak(ctx, reply)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return err
	}
	s.state = VoiceReviewing
	if err != nil {
		s.errMsg = failure
		s.reply = FallbackReply
	} else {
		s.said = text
		s.reply = reply
		s.utterance = utterance
	}
	s.mu.Unlock()

	s.publish()
	return err
}

// Redo clears the exchange, stops any capture still running and listens again.
func (s *VoiceSession) Redo() error {
	s.mu.Lock()
	if s.closed || (s.state != VoiceReviewing && s.state != VoiceError) {
		s.mu.Unlock()
		return utils.ErrInvalidTransition
	}
	s.said = ""
	s.reply = ""
	s.utterance = Utterance{}
	s.errMsg = ""

	if s.capture == nil || !s.capture.Available() {
		s.errMsg = msgUnsupported
		s.mu.Unlock()
		s.publish()
		return utils.ErrCapabilityUnavailable
	}
	s.stopCaptureLocked()
	err := s.beginCaptureLocked()
	s.mu.Unlock()

	s.publish()
	return err
}

// Close stops any active capture. The session accepts no further actions.
func (s *VoiceSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stopCaptureLocked()
	s.closed = true
}

func (s *VoiceSession) Snapshot() resp.VoiceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := resp.VoiceSnapshot{
		Type:            "state",
		State:           string(s.state),
		FinalTranscript: s.final,
		AgentReply:      s.reply,
		Error:           s.errMsg,
		Speak:           s.utterance.BrowserSpeaks,
		AudioURL:        s.utterance.AudioURL,
	}
	switch {
	case s.state == VoiceListening && s.acc.Interim == "":
		snap.Transcript = "Listening..."
	case s.state == VoiceListening:
		snap.Transcript = s.acc.Interim
	case s.said != "":
		snap.Transcript = "You said: " + s.said
	}
	if s.reply != "" {
		snap.AgentReplyHTML = utils.RenderMarkdown(s.reply)
	}
	return snap
}

func (s *VoiceSession) beginCaptureLocked() error {
	if err := s.capture.Start(); err != nil {
		s.errMsg = "Failed to start recording: " + err.Error()
		return err
	}
	s.state = VoiceListening
	s.capturing = true
	s.acc = TranscriptAcc{}
	s.final = ""
	s.edited = false
	s.errMsg = ""
	return nil
}

func (s *VoiceSession) stopCaptureLocked() {
	if s.capturing && s.capture != nil {
		s.capture.Stop()
	}
	s.capturing = false
}

func (s *VoiceSession) converse(ctx context.Context, text string) (string, string, error) {
	if _, err := s.backend.Transcribe(ctx, text); err != nil {
		s.log.Warn("transcription failed", zap.String("session", s.ID), zap.Error(err))
		return "", "Transcription failed: " + err.Error(), err
	}
	reply, err := s.backend.AgentResponse(ctx, text)
	if err != nil {
		s.log.Warn("agent response failed", zap.String("session", s.ID), zap.Error(err))
		return "", "Error processing request: " + err.Error(), err
	}
	return reply, "", nil
}

func (s *VoiceSession) speak(ctx context.Context, reply string) Utterance {
	u, err := s.speaker.Speak(ctx, reply)
	if err != nil {
		s.log.Warn("speech synthesis failed, page will speak", zap.Error(err))
		return Utterance{Text: reply, BrowserSpeaks: true}
	}
	return u
}

func (s *VoiceSession) record(ctx context.Context, question, reply string, elapsed time.Duration, ok bool) {
	if s.recorder == nil {
		return
	}
	err := s.recorder.RecordCall(context.WithoutCancel(ctx), CallRecord{
		AccountID: s.accountID,
		Question:  question,
		Reply:     reply,
		Duration:  elapsed,
		Succeeded: ok,
	})
	if err != nil {
		s.log.Error("failed to record voice call", zap.Error(err))
	}
}

func (s *VoiceSession) publish() {
	if s.notify == nil {
		return
	}
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.notify(s.Snapshot())
}
