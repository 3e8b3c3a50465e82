package agent

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diogo/agentchat/internal/models"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Two large pizzas feed five people."}}
  ]
}`

func TestOpenAIAgent_Reply(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("unexpected Authorization %q", r.Header.Get("Authorization"))
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody)
	}))
	defer server.Close()

	a, err := NewOpenAIAgent(Settings{
		Name:         "PizzaOrderAgent",
		APIKey:       "sk-test",
		BaseURL:      server.URL + "/v1/",
		Instructions: "You take pizza orders.",
		Temperature:  0.7,
		TopP:         0.7,
	})
	if err != nil {
		t.Fatal(err)
	}

	reply, err := a.Reply(context.Background(), []models.Message{
		models.UserMessage("How many pizzas for 5?"),
	})
	if err != nil {
		t.Fatalf("Reply() error: %v", err)
	}
	if reply != "Two large pizzas feed five people." {
		t.Errorf("Reply() = %q", reply)
	}

	if got["model"] != "gpt-4o" {
		t.Errorf("model = %v, want default gpt-4o", got["model"])
	}
	if got["temperature"] != 0.7 || got["top_p"] != 0.7 {
		t.Errorf("sampling = %v/%v", got["temperature"], got["top_p"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system + user messages, got %v", got["messages"])
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("first message role = %v", first["role"])
	}
	if second, _ := msgs[1].(map[string]any); second["role"] != "user" {
		t.Errorf("second message role = %v", second["role"])
	}
}

func TestOpenAIAgent_ReplyError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"message":"bad model","type":"invalid_request_error"}}`)
	}))
	defer server.Close()

	a, err := NewOpenAIAgent(Settings{APIKey: "sk-test", BaseURL: server.URL + "/v1/", Model: "nope"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Reply(context.Background(), []models.Message{models.UserMessage("hi")}); err == nil {
		t.Error("expected error from a 400 response")
	}
}

func TestOpenAIAgent_BuildParams(t *testing.T) {
	a := &OpenAIAgent{settings: Settings{Model: "gpt-4o-mini"}}
	params := a.buildParams([]models.Message{
		models.UserMessage("hi"),
		models.AgentMessage("hello"),
		models.UserMessage("menu?"),
	})

	if string(params.Model) != "gpt-4o-mini" {
		t.Errorf("Model = %q", params.Model)
	}
	if len(params.Messages) != 3 {
		t.Errorf("expected 3 messages without instructions, got %d", len(params.Messages))
	}
	if params.Messages[1].OfAssistant == nil {
		t.Error("agent turns should be sent as assistant messages")
	}
}

func TestOpenAIAgent_EmptyThread(t *testing.T) {
	a, _ := NewOpenAIAgent(Settings{APIKey: "sk-test"})
	if _, err := a.Reply(context.Background(), nil); err == nil {
		t.Error("expected error for empty thread")
	}
}
