package interview

// Question is one multiple-choice interview question
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// Valid reports whether the question has a prompt, options and an answer
func (q Question) Valid() bool {
	return q.Question != "" && len(q.Options) > 0 && q.Answer != ""
}

const (
	DefaultQuestionCount = 5
	MaxQuestionCount     = 20
)
