package jobsrv

import (
	"context"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
)

// missingSkills is the sorted gap between the posting's skills and the
// candidate's, capped at job.MaxMissingSkills. Postings stored without
// skills fall back to extracting them from the description; a failed
// extraction yields an empty gap.
func (s *MatchService) missingSkills(ctx context.Context, p *job.Posting, have []string) []string {
	required := p.Skills
	if !p.HasPrecomputedSkills() {
		if p.Description == "" || s.extractor == nil {
			return []string{}
		}

		extracted, err := s.extractor.Extract(ctx, p.Description)
		if err != nil {
			logx.WithFields(map[string]any{"job_id": p.ID.String()}).
				Warnf("Fallback skill extraction failed: %v", err)
			return []string{}
		}
		required = extracted
	}

	return kernel.SkillGap(required, have, job.MaxMissingSkills)
}
