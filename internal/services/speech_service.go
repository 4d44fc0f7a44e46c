package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	mem "zenjourney/pkg/memcache"
	"zenjourney/pkg/utils"
)

const (
	SpeechProviderBrowser = "browser"
	SpeechProviderOpenAI  = "openai"
)

// maxClipBytes bounds one synthesized reply.
const maxClipBytes = 10 << 20

// Utterance tells the voice page how to play a reply.
type Utterance struct {
	Text          string
	BrowserSpeaks bool
	AudioURL      string
}

type Synthesizer interface {
	Speak(ctx context.Context, text string) (Utterance, error)
}

// AudioSynthesizer is a Synthesizer that produces audio on the server.
type AudioSynthesizer interface {
	Synthesizer
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Clip(id string) ([]byte, bool)
}

// BrowserSynthesizer leaves speaking to the page's speech synthesis.
type BrowserSynthesizer struct{}

func (BrowserSynthesizer) Speak(_ context.Context, text string) (Utterance, error) {
	return Utterance{Text: text, BrowserSpeaks: true}, nil
}

// SpeechClient is the part of the OpenAI client used for text to speech.
type SpeechClient interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

type OpenAISynthesizer struct {
	client SpeechClient
	model  string
	voice  string
	clips  *mem.Store[[]byte]
	log    *zap.Logger
}

func NewOpenAISynthesizer(client SpeechClient, model, voice string, clips *mem.Store[[]byte], log *zap.Logger) *OpenAISynthesizer {
	return &OpenAISynthesizer{
		client: client,
		model:  model,
		voice:  voice,
		clips:  clips,
		log:    log,
	}
}

// Synthesize returns MP3 audio for text.
func (o *OpenAISynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if o.client == nil {
		return nil, utils.ErrCapabilityUnavailable
	}

	res, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          text,
		Voice:          openai.SpeechVoice(o.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	defer res.Close()

	audio, err := io.ReadAll(io.LimitReader(res, maxClipBytes))
	if err != nil {
		return nil, fmt.Errorf("read speech: %w", err)
	}
	return audio, nil
}

// Speak synthesizes text and keeps the clip until the page fetches it.
func (o *OpenAISynthesizer) Speak(ctx context.Context, text string) (Utterance, error) {
	audio, err := o.Synthesize(ctx, text)
	if err != nil {
		return Utterance{}, err
	}

	id := uuid.NewString()
	o.clips.Set(id, audio)
	o.log.Debug("speech clip stored", zap.String("clip", id), zap.Int("bytes", len(audio)))

	return Utterance{Text: text, AudioURL: "/voice/speech/" + id}, nil
}

func (o *OpenAISynthesizer) Clip(id string) ([]byte, bool) {
	return o.clips.Get(id)
}
