package classify

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "already normalized", input: "TIM HORTONS", want: "TIM HORTONS"},
		{name: "lowercase", input: "tim hortons", want: "TIM HORTONS"},
		{name: "internal whitespace run", input: "TIM   HORTONS\t#3456", want: "TIM HORTONS 3456"},
		{name: "leading and trailing space", input: "  PRESTO FARE ", want: "PRESTO FARE"},
		{name: "punctuation collapses", input: "WAL-MART #1234", want: "WAL MART 1234"},
		{name: "star and punctuation run", input: "CU* RM FINANCE", want: "CU RM FINANCE"},
		{name: "mixed punctuation run", input: "UBER *EATS...TORONTO", want: "UBER EATS TORONTO"},
		{name: "only punctuation", input: "***", want: ""},
		{name: "accented letters kept", input: "café", want: "CAFÉ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
