package stats_test

import (
	"fmt"
	"reflect"
	"testing"

	"student-performance-go/models"
	"student-performance-go/stats"
)

func TestComputeStatsEmpty(t *testing.T) {
	got := stats.ComputeStats(nil)
	if got.OverallAverage != 0 {
		t.Fatalf("expected overall 0, got %v", got.OverallAverage)
	}
	if len(got.PerSubjectAverage) != 0 {
		t.Fatalf("expected no subjects, got %v", got.PerSubjectAverage)
	}
	if got.PerSubjectAverage == nil {
		t.Fatal("expected empty map, got nil")
	}
	if got.BestSubject != nil || got.WorstSubject != nil {
		t.Fatalf("expected nil best/worst, got %v/%v", got.BestSubject, got.WorstSubject)
	}
	if got.AssessmentsCount != 0 {
		t.Fatalf("expected count 0, got %d", got.AssessmentsCount)
	}
}

func TestComputeStatsSingleSubject(t *testing.T) {
	got := stats.ComputeStats([]models.Assessment{
		{Score: 50, Total: 100, Subject: "Math"},
		{Score: 80, Total: 100, Subject: "Math"},
	})
	if !reflect.DeepEqual(got.PerSubjectAverage, map[string]float64{"Math": 65}) {
		t.Fatalf("unexpected per-subject averages: %v", got.PerSubjectAverage)
	}
	if got.OverallAverage != 65 {
		t.Fatalf("expected overall 65, got %v", got.OverallAverage)
	}
	if *got.BestSubject != "Math" || *got.WorstSubject != "Math" {
		t.Fatalf("expected Math/Math, got %s/%s", *got.BestSubject, *got.WorstSubject)
	}
	if got.AssessmentsCount != 2 {
		t.Fatalf("expected count 2, got %d", got.AssessmentsCount)
	}
}

func TestComputeStatsZeroTotal(t *testing.T) {
	got := stats.ComputeStats([]models.Assessment{{Score: 10, Total: 0, Subject: "X"}})
	if got.PerSubjectAverage["X"] != 1000 {
		t.Fatalf("expected 1000, got %v", got.PerSubjectAverage["X"])
	}
	if got.OverallAverage != 1000 {
		t.Fatalf("expected overall 1000, got %v", got.OverallAverage)
	}
}

func TestComputeStatsOverallIsMeanOfAllPercentages(t *testing.T) {
	// Math: 100, 100; Art: 40 -> subject means 100/40, overall 80
	got := stats.ComputeStats([]models.Assessment{
		{Score: 10, Total: 10, Subject: "Math"},
		{Score: 5, Total: 5, Subject: "Math"},
		{Score: 4, Total: 10, Subject: "Art"},
	})
	if got.OverallAverage != 80 {
		t.Fatalf("expected overall 80, got %v", got.OverallAverage)
	}
}

func TestComputeStatsRounding(t *testing.T) {
	got := stats.ComputeStats([]models.Assessment{{Score: 1, Total: 3, Subject: "Physics"}})
	if got.PerSubjectAverage["Physics"] != 33.33 {
		t.Fatalf("expected 33.33, got %v", got.PerSubjectAverage["Physics"])
	}
	if got.OverallAverage != 33.33 {
		t.Fatalf("expected 33.33, got %v", got.OverallAverage)
	}
}

func TestComputeStatsRoundsHalfToEven(t *testing.T) {
	// 1/800 is 0.125%, 3/800 is 0.375%
	got := stats.ComputeStats([]models.Assessment{
		{Score: 1, Total: 800, Subject: "Low"},
		{Score: 3, Total: 800, Subject: "High"},
	})
	if got.PerSubjectAverage["Low"] != 0.12 {
		t.Fatalf("expected 0.12, got %v", got.PerSubjectAverage["Low"])
	}
	if got.PerSubjectAverage["High"] != 0.38 {
		t.Fatalf("expected 0.38, got %v", got.PerSubjectAverage["High"])
	}
}

func TestComputeStatsMissingSubject(t *testing.T) {
	got := stats.ComputeStats([]models.Assessment{{Score: 3, Total: 4}})
	if _, ok := got.PerSubjectAverage[stats.UnknownSubject]; !ok {
		t.Fatalf("expected %q subject, got %v", stats.UnknownSubject, got.PerSubjectAverage)
	}
}

func TestComputeStatsScoreAboveTotal(t *testing.T) {
	got := stats.ComputeStats([]models.Assessment{{Score: 120, Total: 100, Subject: "Bonus"}})
	if got.OverallAverage != 120 {
		t.Fatalf("expected 120, got %v", got.OverallAverage)
	}
}

func TestComputeStatsBestWorstIndependentOfOrder(t *testing.T) {
	high := models.Assessment{Score: 90, Total: 100, Subject: "Zoology"}
	low := models.Assessment{Score: 30, Total: 100, Subject: "Algebra"}

	for _, input := range [][]models.Assessment{{high, low}, {low, high}} {
		got := stats.ComputeStats(input)
		if *got.BestSubject != "Zoology" {
			t.Fatalf("expected best Zoology, got %s", *got.BestSubject)
		}
		if *got.WorstSubject != "Algebra" {
			t.Fatalf("expected worst Algebra, got %s", *got.WorstSubject)
		}
	}
}

func TestComputeStatsTieBreak(t *testing.T) {
	got := stats.ComputeStats([]models.Assessment{
		{Score: 50, Total: 100, Subject: "History"},
		{Score: 5, Total: 10, Subject: "Biology"},
	})
	if *got.BestSubject != "Biology" || *got.WorstSubject != "Biology" {
		t.Fatalf("expected Biology/Biology on tie, got %s/%s", *got.BestSubject, *got.WorstSubject)
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	input := []models.Assessment{
		{Score: 7, Total: 9, Subject: "Chemistry"},
		{Score: 2, Total: 3, Subject: "Music"},
	}
	first := stats.ComputeStats(input)
	second := stats.ComputeStats(input)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestTopStudents(t *testing.T) {
	var input []models.Assessment
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("s%d", i)
		input = append(input,
			models.Assessment{StudentID: id, Score: float64(10 * i), Total: 100},
			models.Assessment{StudentID: id, Score: float64(10*i + 2), Total: 100},
		)
	}

	got := stats.TopStudents(input, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].AvgPct > got[i-1].AvgPct {
			t.Fatalf("not sorted at %d: %v > %v", i, got[i].AvgPct, got[i-1].AvgPct)
		}
	}
	if got[0].StudentID != "s7" || got[0].AvgPct != 71 || got[0].Count != 2 {
		t.Fatalf("unexpected leader: %+v", got[0])
	}
	if got[0].StudentName != nil {
		t.Fatalf("expected no name, got %v", *got[0].StudentName)
	}
}

func TestTopStudentsNonPositiveTotal(t *testing.T) {
	got := stats.TopStudents([]models.Assessment{
		{StudentID: "a", Score: 3, Total: -5},
		{StudentID: "b", Score: 2, Total: 0},
	}, 5)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].StudentID != "a" || got[0].AvgPct != 300 {
		t.Fatalf("unexpected first entry: %+v", got[0])
	}
	if got[1].AvgPct != 200 {
		t.Fatalf("unexpected second entry: %+v", got[1])
	}
}

func TestTopStudentsEmpty(t *testing.T) {
	got := stats.TopStudents(nil, 5)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		score, total, want float64
	}{
		{50, 100, 50},
		{10, 0, 1000},
		{150, 100, 150},
		{0, 20, 0},
	}
	for _, tt := range tests {
		if got := stats.Percentage(tt.score, tt.total); got != tt.want {
			t.Errorf("Percentage(%v, %v) = %v, want %v", tt.score, tt.total, got, tt.want)
		}
	}
}
