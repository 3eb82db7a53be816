package skills

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Abraxas-365/skillbridge/internal/ai/llmjson"
	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

// ErrNotReady is returned while no model is available. Callers treat
// skill extraction as best effort when they see it.
var ErrNotReady = errors.New("skills: extractor not ready")

// maxInputRunes bounds the text sent to the model
const maxInputRunes = 12000

const systemPrompt = `You extract skills from resumes and job descriptions. Return ONLY valid JSON.`

const userPrompt = `List the concrete skills mentioned in the text below: programming languages, frameworks, tools, platforms, databases, methodologies and relevant soft skills.

Return JSON of the form {"skills": [string]}.
- Use the canonical spelling of each skill (e.g. "JavaScript", "PostgreSQL")
- Do not invent skills that are not in the text
- No duplicates

Text:
`

// Extractor maps free text to a set of skill labels using a chat model
type Extractor struct {
	apiKey string
	model  string
	opts   []option.RequestOption

	once   sync.Once
	client *openai.Client
}

func NewExtractor(apiKey, model string, opts ...option.RequestOption) *Extractor {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Extractor{apiKey: apiKey, model: model, opts: opts}
}

func (e *Extractor) init() {
	e.once.Do(func() {
		if e.apiKey == "" {
			return
		}
		opts := append([]option.RequestOption{option.WithAPIKey(e.apiKey)}, e.opts...)
		client := openai.NewClient(opts...)
		e.client = &client
	})
}

// Extract returns the trimmed, deduplicated skills found in text.
// Empty text yields an empty set.
func (e *Extractor) Extract(ctx context.Context, text string) ([]string, error) {
	e.init()
	if e.client == nil {
		return nil, ErrNotReady
	}
	if text == "" {
		return []string{}, nil
	}

	completion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt + kernel.Truncate(text, maxInputRunes)),
		},
		Model: e.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return nil, fmt.Errorf("openai skills extraction: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	var out struct {
		Skills []string `json:"skills"`
	}
	if err := llmjson.Decode(completion.Choices[0].Message.Content, &out); err != nil {
		return nil, fmt.Errorf("failed to parse skills JSON: %w", err)
	}

	// Posting skills are kept exactly as the model wrote them. Profiles
	// normalize on their side.
	if out.Skills == nil {
		return []string{}, nil
	}
	return out.Skills, nil
}
