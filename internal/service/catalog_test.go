package service

import (
	"errors"
	"testing"

	"github.com/streakworks/streakbot/internal/domain"
)

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateTemplateInput
		wantErr bool
	}{
		{
			name: "valid checkin",
			in:   CreateTemplateInput{Kind: domain.TaskCheckin, Title: "Check-in diario", Weight: 10},
		},
		{
			name: "valid quiz",
			in:   CreateTemplateInput{Kind: domain.TaskQuiz, Title: "Trivia", Weight: 5, Question: "¿Capital de Uruguay?", Answer: "Montevideo"},
		},
		{
			name: "valid link",
			in:   CreateTemplateInput{Kind: domain.TaskLink, Title: "Nota", Weight: 3, URL: "https://example.com/nota"},
		},
		{
			name:    "empty title",
			in:      CreateTemplateInput{Kind: domain.TaskCheckin, Title: "   ", Weight: 1},
			wantErr: true,
		},
		{
			name:    "zero weight",
			in:      CreateTemplateInput{Kind: domain.TaskCheckin, Title: "Check-in", Weight: 0},
			wantErr: true,
		},
		{
			name:    "quiz without answer",
			in:      CreateTemplateInput{Kind: domain.TaskQuiz, Title: "Trivia", Weight: 1, Question: "¿?"},
			wantErr: true,
		},
		{
			name:    "link with bad url",
			in:      CreateTemplateInput{Kind: domain.TaskLink, Title: "Nota", Weight: 1, URL: "ftp://example.com"},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			in:      CreateTemplateInput{Kind: "video", Title: "Video", Weight: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTemplate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrInvalidTemplate) {
				t.Errorf("error %v is not ErrInvalidTemplate", err)
			}
		})
	}
}

func TestValidHTTPURL(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path?x=1", true},
		{"  https://example.com  ", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"https://", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := validHTTPURL(tt.raw); got != tt.want {
			t.Errorf("validHTTPURL(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
