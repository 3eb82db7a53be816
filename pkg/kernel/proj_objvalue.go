package kernel

import (
	"sort"
	"strings"
)

// EmbeddingDim is the width of every vector stored in the index
const EmbeddingDim = 384

type Embedding []float32

type Email string

type BucketURL string

// Skill is a free-text skill label. Comparison is case-sensitive.
type Skill = string

// NormalizeSkills trims entries, drops empties and removes duplicates while
// keeping the first occurrence order.
func NormalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// SkillGap returns the skills in required that are absent from have,
// sorted lexicographically and cut to at most limit entries.
func SkillGap(required, have []string, limit int) []string {
	owned := make(map[string]struct{}, len(have))
	for _, s := range have {
		owned[s] = struct{}{}
	}

	gap := make([]string, 0, len(required))
	seen := make(map[string]struct{}, len(required))
	for _, s := range required {
		if _, ok := owned[s]; ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		gap = append(gap, s)
	}

	sort.Strings(gap)
	if limit >= 0 && len(gap) > limit {
		gap = gap[:limit]
	}
	return gap
}

// Truncate cuts s to at most n characters (runes)
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
