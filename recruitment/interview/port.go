package interview

import (
	"context"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
)

// QuestionGenerator produces multiple-choice questions for a skill list
type QuestionGenerator interface {
	Generate(ctx context.Context, skills []string, count int) ([]Question, error)
}

// SkillSource supplies the stored skills of an account
type SkillSource interface {
	SkillsOf(ctx context.Context, accountID kernel.AccountID) ([]string, error)
}

// Synthesizer renders text as MP3 audio
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Transcriber turns a recorded answer into text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, fileName string) (string, error)
}
