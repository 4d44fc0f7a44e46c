package request_models

// TranscribeRequest is the body of POST /transcribe-real.
type TranscribeRequest struct {
	AudioTranscript string `json:"audioTranscript"`
}

// AgentRequest is the body of POST /agent-response.
type AgentRequest struct {
	Transcript string `json:"transcript"`
}

// RecognitionResult is one entry of a browser recognition event.
type RecognitionResult struct {
	Transcript string `json:"transcript"`
	IsFinal    bool   `json:"isFinal"`
}

// VoiceClientMessage is a message sent by the voice page over the websocket.
//
//	{"type":"start","supported":true}
//	{"type":"result","results":[{"transcript":"par","isFinal":false}]}
//	{"type":"error","error":"no-speech"}
//	{"type":"edit","text":"Paris please"}
//	{"type":"end"} / {"type":"send"} / {"type":"redo"} / {"type":"stop"}
type VoiceClientMessage struct {
	Type      string              `json:"type"`
	Supported bool                `json:"supported,omitempty"`
	Results   []RecognitionResult `json:"results,omitempty"`
	Error     string              `json:"error,omitempty"`
	Text      string              `json:"text,omitempty"`
}

// SpeechRequest asks for server-side synthesis of a reply.
type SpeechRequest struct {
	Text string `json:"text" binding:"required,max=4096"`
}
