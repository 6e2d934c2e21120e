package feedback

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/verte-zerg/tuimole/internal/model"
)

// ParseVerdict decodes a provider reply of the form
// {"message": "...", "difficulty": "easy|medium|hard"}. Surrounding code
// fences are tolerated. The difficulty is normalized but not restricted to
// the known set; callers decide what an unknown value means.
func ParseVerdict(raw string) (model.Verdict, error) {
	body := stripFence(raw)
	if !gjson.Valid(body) {
		return model.Verdict{}, fmt.Errorf("%w: not JSON", ErrMalformed)
	}
	doc := gjson.Parse(body)
	if !doc.IsObject() {
		return model.Verdict{}, fmt.Errorf("%w: not an object", ErrMalformed)
	}
	diff := doc.Get("difficulty")
	if diff.Type != gjson.String {
		return model.Verdict{}, fmt.Errorf("%w: difficulty is not a string", ErrMalformed)
	}
	d, _ := model.ParseDifficulty(diff.String())
	if d == "" {
		return model.Verdict{}, fmt.Errorf("%w: empty difficulty", ErrMalformed)
	}
	msg := doc.Get("message")
	verdict := model.Verdict{Difficulty: d}
	if msg.Type == gjson.String {
		verdict.Message = strings.TrimSpace(msg.String())
	}
	return verdict, nil
}

func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the language tag line.
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
