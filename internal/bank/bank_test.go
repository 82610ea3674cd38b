package bank

import (
	"strings"
	"testing"
)

const validBank = `[
  {"id": 1, "question": "Footings must extend below what depth?", "choices": ["6 in", "12 in", "18 in", "24 in"], "correct": [1], "explanation": "Below the frost line, minimum 12 inches."},
  {"id": 2, "question": "Which are load-bearing?", "choices": ["Girder", "Trim", "Header", "Casing"], "correct": [0, 2], "multi": true}
]`

func TestParse_BareArray(t *testing.T) {
	b, err := Parse([]byte(validBank))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
	if q := b.ByID(2); q == nil || !q.Multi {
		t.Errorf("ByID(2) = %+v, want multi question", q)
	}
}

func TestParse_WrappedObject(t *testing.T) {
	wrapped := `{"questions": ` + validBank + `}`
	b, err := Parse([]byte(wrapped))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "empty array",
			data: `[]`,
			want: "no questions",
		},
		{
			name: "missing correct",
			data: `[{"id": 1, "question": "Q?", "choices": ["a", "b"]}]`,
			want: "schema",
		},
		{
			name: "correct index out of range",
			data: `[{"id": 1, "question": "Q?", "choices": ["a", "b"], "correct": [2]}]`,
			want: "out of range",
		},
		{
			name: "single-answer with two correct",
			data: `[{"id": 1, "question": "Q?", "choices": ["a", "b", "c"], "correct": [0, 1]}]`,
			want: "single-answer",
		},
		{
			name: "duplicate id",
			data: `[{"id": 1, "question": "Q?", "choices": ["a", "b"], "correct": [0]},
			        {"id": 1, "question": "R?", "choices": ["a", "b"], "correct": [1]}]`,
			want: "duplicate question id",
		},
		{
			name: "one choice",
			data: `[{"id": 1, "question": "Q?", "choices": ["a"], "correct": [0]}]`,
			want: "schema",
		},
		{
			name: "not json",
			data: `{{`,
			want: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestIsCorrectSet(t *testing.T) {
	q := &Question{ID: 7, Question: "Q?", Choices: []string{"a", "b", "c", "d"}, Correct: []int{1, 3}, Multi: true}

	tests := []struct {
		name   string
		chosen []int
		want   bool
	}{
		{"exact", []int{1, 3}, true},
		{"reversed order", []int{3, 1}, true},
		{"subset", []int{1}, false},
		{"superset", []int{1, 3, 0}, false},
		{"disjoint", []int{0, 2}, false},
		{"empty", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := q.IsCorrectSet(tt.chosen); got != tt.want {
				t.Errorf("IsCorrectSet(%v) = %v, want %v", tt.chosen, got, tt.want)
			}
		})
	}
}

func TestBank_Order(t *testing.T) {
	b, err := Parse([]byte(validBank))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ids := b.IDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("IDs = %v, want [1 2]", ids)
	}
}
