package services

import "zenjourney/internal/models/request_models"

// RecognitionEvent is one batch of results reported by the speech recognizer.
// A single event may carry interim and final fragments together.
type RecognitionEvent struct {
	Results []request_models.RecognitionResult
}

// TranscriptAcc holds the live interim text and the cumulative final text.
type TranscriptAcc struct {
	Interim string
	Final   string
}

// ReduceTranscript folds one event into acc. Interim text replaces the
// previous interim text; final fragments are appended to Final.
func ReduceTranscript(acc TranscriptAcc, ev RecognitionEvent) TranscriptAcc {
	var interim, final string
	for _, r := range ev.Results {
		if r.IsFinal {
			final += r.Transcript
		} else {
			interim += r.Transcript
		}
	}

	if interim != "" {
		acc.Interim = interim
	}
	if final != "" {
		acc.Final += final
		acc.Interim = ""
	}
	return acc
}

func FoldTranscript(events []RecognitionEvent) TranscriptAcc {
	var acc TranscriptAcc
	for _, ev := range events {
		acc = ReduceTranscript(acc, ev)
	}
	return acc
}
