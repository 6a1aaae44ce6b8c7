// Package stats computes rollups over a scoped set of risks. Callers
// supply the records; scoping has already happened upstream, so
// nothing here can widen visibility.
package stats

import (
	"sort"

	"risk-register/internal/models"
)

type Summary struct {
	TotalRisks int `json:"total_risks"`
	HighRisks  int `json:"high_risks"`
}

// Distribution holds parallel arrays: Labels[i] is the category counted
// by Data[i]. Categories with no records are omitted.
type Distribution struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

// Rank gives the fixed display order of category labels. Unknown
// labels all rank 4 and keep their first-seen order among themselves.
func Rank(label string) int {
	switch label {
	case models.LevelLow:
		return 1
	case models.LevelMedium:
		return 2
	case models.LevelHigh:
		return 3
	default:
		return 4
	}
}

// Summarize counts the records and how many of them are High risks.
func Summarize(risks []models.Risk) Summary {
	s := Summary{TotalRisks: len(risks)}
	for _, r := range risks {
		if r.RiskLevel == models.LevelHigh {
			s.HighRisks++
		}
	}
	return s
}

// ByLevel counts risks per risk_level, ordered Low, Medium, High, rest.
func ByLevel(risks []models.Risk) Distribution {
	return countBy(risks, func(r models.Risk) string { return r.RiskLevel })
}

// ByImpact counts risks per impact, with the same ordering.
func ByImpact(risks []models.Risk) Distribution {
	return countBy(risks, func(r models.Risk) string { return r.Impact })
}

func countBy(risks []models.Risk, field func(models.Risk) string) Distribution {
	counts := make(map[string]int)
	labels := make([]string, 0)

	for _, r := range risks {
		v := field(r)
		if _, seen := counts[v]; !seen {
			labels = append(labels, v)
		}
		counts[v]++
	}

	// stable keeps first-seen order among equally ranked labels
	sort.SliceStable(labels, func(i, j int) bool {
		return Rank(labels[i]) < Rank(labels[j])
	})

	data := make([]int, len(labels))
	for i, l := range labels {
		data[i] = counts[l]
	}

	return Distribution{Labels: labels, Data: data}
}
