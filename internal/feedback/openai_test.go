package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/verte-zerg/tuimole/internal/model"
)

func chatServer(t *testing.T, status int, content string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("expected bearer key, got %q", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		if seen != nil {
			if err := json.Unmarshal(body, seen); err != nil {
				t.Errorf("decode body: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
			return
		}
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   DefaultModel,
			"choices": []any{map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIFeedback(t *testing.T) {
	var seen map[string]any
	srv := chatServer(t, http.StatusOK, `{"message":"Sharp!","difficulty":"hard"}`, &seen)
	p, err := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	got, err := p.Feedback(context.Background(), model.Performance{Score: 7, Hits: 7, Misses: 1, Accuracy: 88})
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if got.Difficulty != model.DifficultyHard || got.Message != "Sharp!" {
		t.Fatalf("unexpected verdict %+v", got)
	}
	if seen["model"] != DefaultModel {
		t.Fatalf("expected model %s, got %v", DefaultModel, seen["model"])
	}
	if seen["temperature"] != DefaultTemperature {
		t.Fatalf("expected temperature %v, got %v", DefaultTemperature, seen["temperature"])
	}
	msgs, ok := seen["messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", seen["messages"])
	}
	content, _ := msgs[0].(map[string]any)["content"].(string)
	if !strings.Contains(content, "Accuracy: 88%") {
		t.Fatalf("expected accuracy in prompt, got %q", content)
	}
}

func TestOpenAIFeedbackErrors(t *testing.T) {
	srv := chatServer(t, http.StatusInternalServerError, "", nil)
	p, err := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, err := p.Feedback(context.Background(), model.Performance{}); err == nil {
		t.Fatalf("expected error for server failure")
	}

	bad := chatServer(t, http.StatusOK, "I think medium?", nil)
	p, err = NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: bad.URL})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, err := p.Feedback(context.Background(), model.Performance{}); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestOpenAIFeedbackSendsZeroTemperature(t *testing.T) {
	var seen map[string]any
	srv := chatServer(t, http.StatusOK, `{"message":"ok","difficulty":"medium"}`, &seen)
	zero := 0.0
	p, err := NewOpenAI(OpenAIConfig{APIKey: "sk-test", BaseURL: srv.URL, Temperature: &zero})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if _, err := p.Feedback(context.Background(), model.Performance{}); err != nil {
		t.Fatalf("feedback: %v", err)
	}
	got, ok := seen["temperature"]
	if !ok || got != 0.0 {
		t.Fatalf("expected temperature 0 in request, got %v (present=%v)", got, ok)
	}
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	if _, err := NewOpenAI(OpenAIConfig{APIKey: "  "}); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestPromptFormat(t *testing.T) {
	got := Prompt(model.Performance{Score: 3, Hits: 3, Misses: 2, Accuracy: 60})
	for _, want := range []string{"Score: 3\n", "Hits: 3\n", "Misses: 2\n", "Accuracy: 60%\n", `"difficulty": "easy | medium | hard"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected prompt to contain %q, got %q", want, got)
		}
	}
}
