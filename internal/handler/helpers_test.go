package handler

import (
	"reflect"
	"testing"
)

func TestCommandIDArg(t *testing.T) {
	tests := []struct {
		text     string
		wantID   int64
		wantRest string
		wantOK   bool
	}{
		{"/responder 3 buenos aires", 3, "buenos aires", true},
		{"/canjear 12 ABC123", 12, "ABC123", true},
		{"/responder 5", 5, "", true},
		{"/responder", 0, "", false},
		{"/responder tres hola", 0, "", false},
		{"  /canjear 7 X2K9QP  ", 7, "X2K9QP", true},
	}

	for _, tt := range tests {
		id, rest, ok := commandIDArg(tt.text)
		if id != tt.wantID || rest != tt.wantRest || ok != tt.wantOK {
			t.Errorf("commandIDArg(%q) = (%d, %q, %v), want (%d, %q, %v)",
				tt.text, id, rest, ok, tt.wantID, tt.wantRest, tt.wantOK)
		}
	}
}

func TestCallbackID(t *testing.T) {
	tests := []struct {
		data   string
		prefix string
		wantID int64
		wantOK bool
	}{
		{"task_42", "task_", 42, true},
		{"done_7", "done_", 7, true},
		{"done_x", "done_", 0, false},
		{"task_", "task_", 0, false},
	}

	for _, tt := range tests {
		id, ok := callbackID(tt.data, tt.prefix)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("callbackID(%q, %q) = (%d, %v), want (%d, %v)",
				tt.data, tt.prefix, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		s    string
		want []string
	}{
		{"10 | Trivia | ¿Capital? | Montevideo", []string{"10", "Trivia", "¿Capital?", "Montevideo"}},
		{"5 | Nota", []string{"5", "Nota"}},
		{"solo", []string{"solo"}},
		{" a |  b ", []string{"a", "b"}},
	}

	for _, tt := range tests {
		if got := splitFields(tt.s); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitFields(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
