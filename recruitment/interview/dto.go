package interview

// GenerateQuestionsRequest is the body of POST /api/interview/questions.
// Empty Skills means "use the caller's profile skills".
type GenerateQuestionsRequest struct {
	Skills []string `json:"skills"`
	Count  int      `json:"count"`
}

type GenerateQuestionsResponse struct {
	Skills    []string   `json:"skills"`
	Questions []Question `json:"questions"`
}

const (
	// MaxSpeechRunes is the longest text read aloud in one request
	MaxSpeechRunes = 4096

	MaxAudioBytes = 10 << 20
)

// SpeakRequest is the body of POST /api/interview/tts
type SpeakRequest struct {
	Text string `json:"text"`
}

type TranscribeRequest struct {
	FileName string
	Data     []byte
}

type TranscribeResponse struct {
	Text string `json:"text"`
}
