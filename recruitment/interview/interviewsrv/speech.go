package interviewsrv

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Abraxas-365/skillbridge/internal/ai/speech"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/interview"
)

// SpeechService reads questions aloud and transcribes spoken answers
type SpeechService struct {
	synth       interview.Synthesizer
	transcriber interview.Transcriber
}

func NewSpeechService(synth interview.Synthesizer, transcriber interview.Transcriber) *SpeechService {
	return &SpeechService{
		synth:       synth,
		transcriber: transcriber,
	}
}

// Speak returns MP3 audio for the request text
func (s *SpeechService) Speak(ctx context.Context, req interview.SpeakRequest) ([]byte, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, interview.ErrTextRequired()
	}
	if n := utf8.RuneCountInString(text); n > interview.MaxSpeechRunes {
		return nil, interview.ErrTextTooLong().
			WithDetail("length", n).
			WithDetail("max_length", interview.MaxSpeechRunes)
	}

	audio, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		return nil, speechError("synthesize", err)
	}
	return audio, nil
}

// Transcribe returns the text of a recorded answer. No detected speech is
// an empty text, not an error.
func (s *SpeechService) Transcribe(ctx context.Context, req interview.TranscribeRequest) (*interview.TranscribeResponse, error) {
	if len(req.Data) == 0 {
		return nil, interview.ErrAudioRequired()
	}
	if len(req.Data) > interview.MaxAudioBytes {
		return nil, interview.ErrAudioTooLarge().
			WithDetail("size", len(req.Data)).
			WithDetail("max_size", interview.MaxAudioBytes)
	}

	text, err := s.transcriber.Transcribe(ctx, req.Data, req.FileName)
	if err != nil {
		return nil, speechError("transcribe", err)
	}
	return &interview.TranscribeResponse{Text: text}, nil
}

func speechError(step string, err error) error {
	if errors.Is(err, speech.ErrNotReady) {
		return interview.ErrSpeechNotReady()
	}
	logx.Errorf("Speech %s failed: %v", step, err)
	return interview.ErrRegistry.NewWithCause(interview.CodeSpeechFailed, err).WithDetail("step", step)
}
