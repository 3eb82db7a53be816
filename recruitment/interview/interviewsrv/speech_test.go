package interviewsrv

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Abraxas-365/skillbridge/internal/ai/speech"
	"github.com/Abraxas-365/skillbridge/recruitment/interview"
)

type stubVoice struct {
	err      error
	text     string
	fileName string
}

func (v *stubVoice) Synthesize(_ context.Context, text string) ([]byte, error) {
	v.text = text
	if v.err != nil {
		return nil, v.err
	}
	return []byte("mp3"), nil
}

func (v *stubVoice) Transcribe(_ context.Context, audio []byte, fileName string) (string, error) {
	v.fileName = fileName
	if v.err != nil {
		return "", v.err
	}
	return string(audio), nil
}

func TestSpeakTrimsText(t *testing.T) {
	v := &stubVoice{}
	s := NewSpeechService(v, v)

	audio, err := s.Speak(context.Background(), interview.SpeakRequest{Text: "  What is a goroutine?\n"})
	if err != nil {
		t.Fatal(err)
	}
	if string(audio) != "mp3" || v.text != "What is a goroutine?" {
		t.Fatalf("audio = %q, text = %q", audio, v.text)
	}
}

func TestSpeakValidation(t *testing.T) {
	s := NewSpeechService(&stubVoice{}, &stubVoice{})

	cases := map[string]error{
		"":   interview.ErrTextRequired(),
		"  ": interview.ErrTextRequired(),
		strings.Repeat("é", interview.MaxSpeechRunes+1): interview.ErrTextTooLong(),
	}
	for text, want := range cases {
		if _, err := s.Speak(context.Background(), interview.SpeakRequest{Text: text}); !errors.Is(err, want) {
			t.Errorf("Speak(len %d) err = %v, want %v", len(text), err, want)
		}
	}

	if _, err := s.Speak(context.Background(), interview.SpeakRequest{Text: strings.Repeat("é", interview.MaxSpeechRunes)}); err != nil {
		t.Fatalf("text at the limit rejected: %v", err)
	}
}

func TestSpeechErrorsMapped(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{speech.ErrNotReady, interview.ErrSpeechNotReady()},
		{errors.New("502 from upstream"), interview.ErrRegistry.New(interview.CodeSpeechFailed)},
	}

	for _, tc := range cases {
		v := &stubVoice{err: tc.err}
		s := NewSpeechService(v, v)

		if _, err := s.Speak(context.Background(), interview.SpeakRequest{Text: "hi"}); !errors.Is(err, tc.want) {
			t.Errorf("Speak err = %v, want %v", err, tc.want)
		}
		if _, err := s.Transcribe(context.Background(), interview.TranscribeRequest{Data: []byte("x")}); !errors.Is(err, tc.want) {
			t.Errorf("Transcribe err = %v, want %v", err, tc.want)
		}
	}
}

func TestTranscribe(t *testing.T) {
	v := &stubVoice{}
	s := NewSpeechService(v, v)

	resp, err := s.Transcribe(context.Background(), interview.TranscribeRequest{FileName: "a.wav", Data: []byte("hello")})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Text != "hello" || v.fileName != "a.wav" {
		t.Fatalf("resp = %+v, file = %q", resp, v.fileName)
	}
}

func TestTranscribeValidation(t *testing.T) {
	s := NewSpeechService(&stubVoice{}, &stubVoice{})

	if _, err := s.Transcribe(context.Background(), interview.TranscribeRequest{}); !errors.Is(err, interview.ErrAudioRequired()) {
		t.Fatalf("empty audio err = %v", err)
	}
	big := make([]byte, interview.MaxAudioBytes+1)
	if _, err := s.Transcribe(context.Background(), interview.TranscribeRequest{Data: big}); !errors.Is(err, interview.ErrAudioTooLarge()) {
		t.Fatalf("oversized audio err = %v", err)
	}
}
