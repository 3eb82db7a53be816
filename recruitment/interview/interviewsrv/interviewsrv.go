package interviewsrv

import (
	"context"
	"errors"

	"github.com/Abraxas-365/skillbridge/internal/ai/questiongen"
	"github.com/Abraxas-365/skillbridge/pkg/errx"
	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/interview"
)

// Service generates mock interview questions
type Service struct {
	generator interview.QuestionGenerator
	skills    interview.SkillSource
}

func NewService(generator interview.QuestionGenerator, skills interview.SkillSource) *Service {
	return &Service{
		generator: generator,
		skills:    skills,
	}
}

// GenerateQuestions builds questions for the requested skills, falling
// back to the caller's profile skills when none are given
func (s *Service) GenerateQuestions(ctx context.Context, accountID kernel.AccountID, req interview.GenerateQuestionsRequest) (*interview.GenerateQuestionsResponse, error) {
	skills := kernel.NormalizeSkills(req.Skills)
	if len(skills) == 0 && s.skills != nil && !accountID.IsEmpty() {
		stored, err := s.skills.SkillsOf(ctx, accountID)
		if err != nil && !errx.IsType(err, errx.TypeNotFound) {
			return nil, errx.Wrap(err, "failed to load profile skills", errx.TypeInternal)
		}
		skills = kernel.NormalizeSkills(stored)
	}
	if len(skills) == 0 {
		return nil, interview.ErrNoSkills()
	}

	count := clampCount(req.Count)

	questions, err := s.generator.Generate(ctx, skills, count)
	if err != nil {
		if errors.Is(err, questiongen.ErrNotReady) {
			return nil, interview.ErrGeneratorNotReady()
		}
		logx.Errorf("Question generation failed for %s: %v", accountID, err)
		return nil, interview.ErrRegistry.NewWithCause(interview.CodeGeneratorFailed, err)
	}
	if len(questions) == 0 {
		return nil, interview.ErrGeneratorFailed().WithDetail("reason", "no valid questions returned")
	}
	if len(questions) > count {
		questions = questions[:count]
	}

	return &interview.GenerateQuestionsResponse{
		Skills:    skills,
		Questions: questions,
	}, nil
}

func clampCount(n int) int {
	switch {
	case n <= 0:
		return interview.DefaultQuestionCount
	case n > interview.MaxQuestionCount:
		return interview.MaxQuestionCount
	default:
		return n
	}
}
