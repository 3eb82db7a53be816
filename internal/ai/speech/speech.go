package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Abraxas-365/skillbridge/recruitment/interview"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	ErrNotReady   = errors.New("speech: client not ready")
	ErrEmptyText  = errors.New("speech: text is empty")
	ErrEmptyAudio = errors.New("speech: audio is empty")
)

const (
	DefaultTTSModel = "tts-1"
	DefaultSTTModel = "whisper-1"
	DefaultVoice    = "alloy"

	defaultAudioName = "answer.webm"
)

type Config struct {
	APIKey   string
	TTSModel string
	STTModel string
	Voice    string
	Language string
}

// Client renders interview prompts as MP3 and transcribes spoken answers.
// The OpenAI client is built on first use.
type Client struct {
	cfg  Config
	opts []option.RequestOption

	once   sync.Once
	client *openai.Client
}

var (
	_ interview.Synthesizer = (*Client)(nil)
	_ interview.Transcriber = (*Client)(nil)
)

func NewClient(cfg Config, opts ...option.RequestOption) *Client {
	if cfg.TTSModel == "" {
		cfg.TTSModel = DefaultTTSModel
	}
	if cfg.STTModel == "" {
		cfg.STTModel = DefaultSTTModel
	}
	if cfg.Voice == "" {
		cfg.Voice = DefaultVoice
	}
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	return &Client{cfg: cfg, opts: opts}
}

func (c *Client) init() {
	c.once.Do(func() {
		if c.cfg.APIKey == "" {
			return
		}
		opts := append([]option.RequestOption{option.WithAPIKey(c.cfg.APIKey)}, c.opts...)
		client := openai.NewClient(opts...)
		c.client = &client
	})
}

// Synthesize returns MP3 bytes for text
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	c.init()
	if c.client == nil {
		return nil, ErrNotReady
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	resp, err := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(c.cfg.TTSModel),
		Voice:          openai.AudioSpeechNewParamsVoice(c.cfg.Voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech: synthesize: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speech: read audio: %w", err)
	}
	return audio, nil
}

// Transcribe returns the trimmed text spoken in audio. The file name's
// extension tells the model the container format; silence yields "".
func (c *Client) Transcribe(ctx context.Context, audio []byte, fileName string) (string, error) {
	c.init()
	if c.client == nil {
		return "", ErrNotReady
	}
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}
	if fileName == "" {
		fileName = defaultAudioName
	}

	res, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:     openai.File(bytes.NewReader(audio), fileName, ""),
		Model:    openai.AudioModel(c.cfg.STTModel),
		Language: openai.String(c.cfg.Language),
	})
	if err != nil {
		return "", fmt.Errorf("speech: transcribe: %w", err)
	}
	return strings.TrimSpace(res.Text), nil
}
