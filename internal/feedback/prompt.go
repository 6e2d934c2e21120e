package feedback

import (
	"fmt"

	"github.com/verte-zerg/tuimole/internal/model"
)

// Prompt renders the request text sent to a language model.
func Prompt(perf model.Performance) string {
	return fmt.Sprintf(`Player performance:
Score: %d
Hits: %d
Misses: %d
Accuracy: %d%%

Respond in JSON only:
{
  "message": "short playful feedback",
  "difficulty": "easy | medium | hard"
}
`, perf.Score, perf.Hits, perf.Misses, perf.Accuracy)
}
