package candidatesrv

import (
	"context"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate"
	"github.com/Abraxas-365/skillbridge/recruitment/interview"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
)

// ProfileAdapter exposes candidate profiles to the match engine and the
// interview generator
type ProfileAdapter struct {
	repo candidate.Repository
}

var (
	_ job.ProfileReader     = (*ProfileAdapter)(nil)
	_ interview.SkillSource = (*ProfileAdapter)(nil)
)

func NewProfileAdapter(repo candidate.Repository) *ProfileAdapter {
	return &ProfileAdapter{repo: repo}
}

func (a *ProfileAdapter) MatchProfile(ctx context.Context, accountID kernel.AccountID) (*job.MatchProfile, error) {
	p, err := a.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &job.MatchProfile{
		AccountID: p.AccountID,
		HasResume: p.HasResume(),
		Skills:    p.Skills,
	}, nil
}

func (a *ProfileAdapter) SkillsOf(ctx context.Context, accountID kernel.AccountID) ([]string, error) {
	p, err := a.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return p.Skills, nil
}
