// Package stats turns assessment records into summary statistics.
package stats

import (
	"math"
	"sort"

	"student-performance-go/models"
)

// UnknownSubject is used for assessments without a subject
const UnknownSubject = "Unknown"

// Percentage returns score/total*100. A zero total counts as 1 so that a
// missing total never divides by zero.
func Percentage(score, total float64) float64 {
	if total == 0 {
		total = 1
	}
	return score / total * 100
}

// rankingPercentage is the leaderboard variant: any non-positive total counts as 1.
func rankingPercentage(score, total float64) float64 {
	if total <= 0 {
		total = 1
	}
	return score / total * 100
}

// round2 rounds to 2 decimal places, halves to even
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ComputeStats computes per-subject averages, the overall average and the
// best and worst subjects. Ties between subjects go to the lexicographically
// smallest name.
func ComputeStats(assessments []models.Assessment) models.Stats {
	bySubject := make(map[string][]float64)
	overall := make([]float64, 0, len(assessments))
	for _, a := range assessments {
		pct := Percentage(a.Score, a.Total)
		overall = append(overall, pct)
		subject := a.Subject
		if subject == "" {
			subject = UnknownSubject
		}
		bySubject[subject] = append(bySubject[subject], pct)
	}

	subjects := make([]string, 0, len(bySubject))
	for s := range bySubject {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	result := models.Stats{
		OverallAverage:    round2(mean(overall)),
		PerSubjectAverage: make(map[string]float64, len(subjects)),
		AssessmentsCount:  len(assessments),
	}

	var best, worst string
	var bestAvg, worstAvg float64
	for i, s := range subjects {
		avg := mean(bySubject[s])
		result.PerSubjectAverage[s] = round2(avg)
		if i == 0 || avg > bestAvg {
			best, bestAvg = s, avg
		}
		if i == 0 || avg < worstAvg {
			worst, worstAvg = s, avg
		}
	}
	if len(subjects) > 0 {
		result.BestSubject = &best
		result.WorstSubject = &worst
	}
	return result
}

// TopStudents ranks students by their mean percentage, highest first, and
// returns at most limit entries. Equal averages are ordered by student ID.
// StudentName is left unset.
func TopStudents(assessments []models.Assessment, limit int) []models.TopStudent {
	byStudent := make(map[string][]float64)
	for _, a := range assessments {
		byStudent[a.StudentID] = append(byStudent[a.StudentID], rankingPercentage(a.Score, a.Total))
	}

	ranked := make([]models.TopStudent, 0, len(byStudent))
	for id, pcts := range byStudent {
		ranked = append(ranked, models.TopStudent{
			StudentID: id,
			AvgPct:    mean(pcts),
			Count:     len(pcts),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AvgPct != ranked[j].AvgPct {
			return ranked[i].AvgPct > ranked[j].AvgPct
		}
		return ranked[i].StudentID < ranked[j].StudentID
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
