package main

import "testing"

func TestSuggestPrefix(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		want   string
		wantOK bool
	}{
		{"no args", nil, "", false},
		{"single rune", []string{"d"}, "d", false},
		{"single accented rune", []string{"é"}, "é", false},
		{"padded single rune", []string{" d "}, "d", false},
		{"two runes", []string{"da"}, "da", true},
		{"two accented runes", []string{"éd"}, "éd", true},
		{"joined words", []string{"data", "intern"}, "data intern", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := suggestPrefix(tt.args)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("suggestPrefix(%q) = (%q, %v), want (%q, %v)", tt.args, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
