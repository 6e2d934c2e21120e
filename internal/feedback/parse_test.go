package feedback

import (
	"errors"
	"testing"

	"github.com/verte-zerg/tuimole/internal/model"
)

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want model.Verdict
	}{
		{
			name: "plain",
			raw:  `{"message":"Nice!","difficulty":"hard"}`,
			want: model.Verdict{Message: "Nice!", Difficulty: model.DifficultyHard},
		},
		{
			name: "fenced",
			raw:  "```json\n{\"message\": \"ok\", \"difficulty\": \"Easy\"}\n```",
			want: model.Verdict{Message: "ok", Difficulty: model.DifficultyEasy},
		},
		{
			name: "missing message",
			raw:  `{"difficulty":"medium"}`,
			want: model.Verdict{Difficulty: model.DifficultyMedium},
		},
		{
			name: "unknown difficulty kept",
			raw:  `{"message":"?","difficulty":"insane"}`,
			want: model.Verdict{Message: "?", Difficulty: model.Difficulty("insane")},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseVerdict(tc.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestParseVerdictRejectsMalformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"not json",
		`["hard"]`,
		`{"message":"hi"}`,
		`{"difficulty":3}`,
		`{"difficulty":"  "}`,
	} {
		if _, err := ParseVerdict(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed for %q, got %v", raw, err)
		}
	}
}
