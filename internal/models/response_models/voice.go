package response_models

// TranscribeResponse is returned by POST /transcribe-real.
type TranscribeResponse struct {
	Transcript string `json:"transcript"`
}

// AgentResponse is returned by POST /agent-response.
type AgentResponse struct {
	Response string `json:"response"`
}

// VoiceSnapshot is pushed to the voice page after every state change.
type VoiceSnapshot struct {
	Type            string `json:"type"`
	State           string `json:"state"`
	Transcript      string `json:"transcript"`
	FinalTranscript string `json:"finalTranscript"`
	AgentReply      string `json:"agentReply"`
	AgentReplyHTML  string `json:"agentReplyHtml,omitempty"`
	Error           string `json:"error,omitempty"`
	// Speak asks the page to speak AgentReply itself.
	Speak bool `json:"speak,omitempty"`
	// AudioURL is set when the reply was synthesized server-side.
	AudioURL string `json:"audioUrl,omitempty"`
}
