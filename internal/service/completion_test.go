package service

import (
	"testing"
	"time"

	"github.com/streakworks/streakbot/internal/domain"
)

func day(s string) domain.Day {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return domain.DayOf(t)
}

func TestNextStreak(t *testing.T) {
	today := day("2025-06-15")
	yesterday := day("2025-06-14")
	lastWeek := day("2025-06-08")

	tests := []struct {
		name    string
		last    *domain.Day
		current int
		want    int
	}{
		{"first ever completion", nil, 0, 1},
		{"continues from yesterday", &yesterday, 4, 5},
		{"gap resets", &lastWeek, 12, 1},
		{"long streak keeps counting", &yesterday, 365, 366},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextStreak(tt.last, today, tt.current); got != tt.want {
				t.Errorf("nextStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLevelForStreak(t *testing.T) {
	tests := []struct {
		streak int
		want   int
	}{
		{0, 1},
		{1, 1},
		{6, 1},
		{7, 2},
		{13, 2},
		{14, 3},
		{62, 9},
		{63, 10},
		{70, 10},
		{1000, 10},
	}

	for _, tt := range tests {
		if got := levelForStreak(tt.streak); got != tt.want {
			t.Errorf("levelForStreak(%d) = %d, want %d", tt.streak, got, tt.want)
		}
	}
}

// A crafted confirm callback must not complete a quiz without its
// answer; every other kind may be confirmed directly.
func TestRequiresAnswer(t *testing.T) {
	tests := []struct {
		kind domain.TaskKind
		want bool
	}{
		{domain.TaskQuiz, true},
		{domain.TaskCheckin, false},
		{domain.TaskLink, false},
		{domain.TaskCampaign, false},
	}

	for _, tt := range tests {
		if got := requiresAnswer(tt.kind); got != tt.want {
			t.Errorf("requiresAnswer(%s) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestAnswersMatch(t *testing.T) {
	tests := []struct {
		expected string
		got      string
		want     bool
	}{
		{"Buenos Aires", "buenos aires", true},
		{"42", " 42 ", true},
		{"si", "no", false},
		{"Montevideo", "Montevideo!", false},
		{"", "", true},
	}

	for _, tt := range tests {
		if got := answersMatch(tt.expected, tt.got); got != tt.want {
			t.Errorf("answersMatch(%q, %q) = %v, want %v", tt.expected, tt.got, got, tt.want)
		}
	}
}
