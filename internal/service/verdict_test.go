package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractVerdict(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "single occurrence returns the token",
			text: "장기 전망은 긍정적입니다.\n\n[VERDICT: BUY]",
			want: "BUY",
		},
		{
			name: "token is trimmed of surrounding whitespace",
			text: "report body [VERDICT:   STRONG BUY  ]",
			want: "STRONG BUY",
		},
		{
			name: "no marker defaults to HOLD",
			text: "the model forgot the closing line entirely",
			want: "HOLD",
		},
		{
			name: "empty text defaults to HOLD",
			text: "",
			want: "HOLD",
		},
		{
			name: "multiple occurrences take the first",
			text: "[VERDICT: SELL] ... restated later as [VERDICT: BUY]",
			want: "SELL",
		},
		{
			name: "marker without closing bracket defaults to HOLD",
			text: "broken output [VERDICT: BUY",
			want: "HOLD",
		},
		{
			name: "empty token defaults to HOLD",
			text: "[VERDICT: ]",
			want: "HOLD",
		},
		{
			name: "unknown token is returned verbatim",
			text: "[VERDICT: STRONG SELL]",
			want: "STRONG SELL",
		},
		{
			name: "marker mid-text still parsed",
			text: "intro [VERDICT: HOLD] trailing commentary",
			want: "HOLD",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVerdict(tt.text))
		})
	}
}

func TestIsKnownVerdict(t *testing.T) {
	tests := []struct {
		verdict string
		want    bool
	}{
		{"STRONG BUY", true},
		{"BUY", true},
		{"HOLD", true},
		{"SELL", true},
		{"STRONG SELL", false},
		{"buy", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.verdict, func(t *testing.T) {
			assert.Equal(t, tt.want, IsKnownVerdict(tt.verdict))
		})
	}
}
