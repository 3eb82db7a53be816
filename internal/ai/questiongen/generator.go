package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Abraxas-365/skillbridge/internal/ai/llmjson"
	"github.com/Abraxas-365/skillbridge/recruitment/interview"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared/constant"
)

var ErrNotReady = errors.New("questiongen: generator not ready")

const systemPrompt = `You are an interviewer writing multiple-choice technical questions. Return ONLY valid JSON.`

// Generator asks a chat model for interview questions
type Generator struct {
	apiKey string
	model  string
	opts   []option.RequestOption

	once   sync.Once
	client *openai.Client
}

var _ interview.QuestionGenerator = (*Generator)(nil)

func NewGenerator(apiKey, model string, opts ...option.RequestOption) *Generator {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Generator{apiKey: apiKey, model: model, opts: opts}
}

func (g *Generator) init() {
	g.once.Do(func() {
		if g.apiKey == "" {
			return
		}
		opts := append([]option.RequestOption{option.WithAPIKey(g.apiKey)}, g.opts...)
		client := openai.NewClient(opts...)
		g.client = &client
	})
}

func prompt(skills []string, count int) string {
	return fmt.Sprintf(`Generate %d multiple-choice interview questions for skills: %s.

Return JSON of the form {"questions": [{"question": string, "options": [string], "answer": string}]}.
- Each question has exactly 4 options
- "answer" is copied verbatim from "options"`, count, strings.Join(skills, ", "))
}

// Generate returns at most count well-formed questions
func (g *Generator) Generate(ctx context.Context, skills []string, count int) ([]interview.Question, error) {
	g.init()
	if g.client == nil {
		return nil, ErrNotReady
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt(skills, count)),
		},
		Model: g.model,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{
				Type: constant.JSONObject("json_object"),
			},
		},
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return nil, fmt.Errorf("openai question generation: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("no response from openai")
	}

	questions, err := Parse(completion.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

// Parse reads either a bare array of questions or an object wrapping them
// under "questions". Malformed entries are dropped.
func Parse(reply string) ([]interview.Question, error) {
	doc, err := llmjson.Extract(reply)
	if err != nil {
		return nil, err
	}

	var items []interview.Question
	if strings.HasPrefix(doc, "[") {
		err = json.Unmarshal([]byte(doc), &items)
	} else {
		var wrapped struct {
			Questions []interview.Question `json:"questions"`
		}
		err = json.Unmarshal([]byte(doc), &wrapped)
		items = wrapped.Questions
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse questions JSON: %w", err)
	}

	out := make([]interview.Question, 0, len(items))
	for _, q := range items {
		if q.Valid() {
			out = append(out, q)
		}
	}
	return out, nil
}
