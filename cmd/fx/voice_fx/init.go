package voice_fx

import (
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"zenjourney/internal/config"
	"zenjourney/internal/services"
	mem "zenjourney/pkg/memcache"
)

var Module = fx.Provide(provideVoiceBackend, provideSynthesizer, provideVoiceService)

func provideVoiceBackend(cfg *config.Config, httpClient *http.Client, log *zap.Logger) services.VoiceBackendInterface {
	return services.NewVoiceBackend(cfg.Voice.BaseURL, cfg.Voice.Timeout, httpClient, log.Named("voice_backend"))
}

// provideSynthesizer picks OpenAI speech when it is configured with a key and
// falls back to the browser otherwise.
func provideSynthesizer(cfg *config.Config, clips *mem.Store[[]byte], log *zap.Logger) services.Synthesizer {
	if cfg.Speech.Provider != services.SpeechProviderOpenAI {
		return services.BrowserSynthesizer{}
	}
	if cfg.Speech.APIKey == "" {
		log.Warn("SPEECH_PROVIDER is openai but OPENAI_API_KEY is empty, using browser speech")
		return services.BrowserSynthesizer{}
	}
	client := openai.NewClient(cfg.Speech.APIKey)
	return services.NewOpenAISynthesizer(client, cfg.Speech.Model, cfg.Speech.Voice, clips, log.Named("speech"))
}

func provideVoiceService(backend services.VoiceBackendInterface, speaker services.Synthesizer, recorder services.AnalyticsServiceInterface, log *zap.Logger) services.VoiceServiceInterface {
	return services.NewVoiceService(backend, speaker, recorder, log.Named("voice"))
}
