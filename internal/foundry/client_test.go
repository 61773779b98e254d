package foundry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(Options{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestCreateChatCompletion(t *testing.T) {
	var captured []byte
	var authHeader, requestID string

	router := chi.NewRouter()
	router.Post("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		captured, _ = io.ReadAll(r.Body)
		authHeader = r.Header.Get("Authorization")
		requestID = r.Header.Get("x-ms-client-request-id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "gpt-5.2-chat",
			"choices": [{"message": {"role": "assistant", "content": " Quantum computing uses qubits. "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 20, "completion_tokens": 15, "total_tokens": 35}
		}`))
	})
	client, _ := newTestClient(t, router)

	completion, err := client.CreateChatCompletion(context.Background(), ChatRequest{
		Model: "gpt-5.2-chat",
		Messages: []ChatMessage{
			{Role: "system", Content: "You are a helpful assistant."},
			{Role: "user", Content: "Explain quantum computing in one sentence."},
		},
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("create chat completion: %v", err)
	}
	if got := completion.Content(); got != "Quantum computing uses qubits." {
		t.Fatalf("content = %q", got)
	}
	if completion.Usage.TotalTokens != 35 {
		t.Fatalf("total tokens = %d, want 35", completion.Usage.TotalTokens)
	}
	if authHeader != "Bearer test-key" {
		t.Fatalf("authorization = %q", authHeader)
	}
	if requestID == "" {
		t.Fatalf("expected a client request id header")
	}

	var payload map[string]any
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("decode captured payload: %v", err)
	}
	if payload["model"] != "gpt-5.2-chat" {
		t.Fatalf("payload model = %v", payload["model"])
	}
	if payload["max_tokens"] != float64(100) {
		t.Fatalf("payload max_tokens = %v", payload["max_tokens"])
	}
	messages := payload["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("messages len = %d, want 2", len(messages))
	}
}

func TestCreateChatCompletionDecodesErrorEnvelope(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"message": "The model is not deployed", "type": "invalid_request_error", "code": "DeploymentNotFound"}}`))
	})
	client, _ := newTestClient(t, router)

	_, err := client.CreateChatCompletion(context.Background(), ChatRequest{
		Model:    "missing-model",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "The model is not deployed") || !strings.Contains(err.Error(), "DeploymentNotFound") {
		t.Fatalf("err = %v, want message and code", err)
	}
}

func TestCreateChatCompletionValidatesInput(t *testing.T) {
	client, err := NewClient(Options{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.CreateChatCompletion(context.Background(), ChatRequest{Messages: []ChatMessage{{Role: "user", Content: "hi"}}}); err == nil {
		t.Fatalf("expected error for missing model")
	}
	if _, err := client.CreateChatCompletion(context.Background(), ChatRequest{Model: "gpt-5.2-chat"}); err == nil {
		t.Fatalf("expected error for missing messages")
	}
}

func TestMissingAPIKeyNeverReachesNetwork(t *testing.T) {
	var hits int
	router := chi.NewRouter()
	router.Post("/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	client, err := NewClient(Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.CreateChatCompletion(context.Background(), ChatRequest{
		Model:    "gpt-5.2-chat",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
	if hits != 0 {
		t.Fatalf("server hits = %d, want 0", hits)
	}
}

func TestCreateResponseAggregatesOutputText(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/responses", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "resp-1",
			"model": "gpt-5.3-codex",
			"status": "completed",
			"output": [
				{"type": "reasoning", "content": []},
				{"type": "message", "role": "assistant", "content": [
					{"type": "output_text", "text": "def fib(n):\n"},
					{"type": "output_text", "text": "    return n"}
				]}
			],
			"usage": {"total_tokens": 180}
		}`))
	})
	client, _ := newTestClient(t, router)

	response, err := client.CreateResponse(context.Background(), ResponseRequest{
		Model: "gpt-5.3-codex",
		Input: "Write a Python function to calculate fibonacci numbers",
	})
	if err != nil {
		t.Fatalf("create response: %v", err)
	}
	want := "def fib(n):\n    return n"
	if got := response.OutputText(); got != want {
		t.Fatalf("output text = %q, want %q", got, want)
	}
	if response.Usage.TotalTokens != 180 {
		t.Fatalf("total tokens = %d, want 180", response.Usage.TotalTokens)
	}
}

func TestVideoLifecycleCalls(t *testing.T) {
	videoBytes := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}
	var createdPayload []byte
	var downloadVariant string

	router := chi.NewRouter()
	router.Post("/videos", func(w http.ResponseWriter, r *http.Request) {
		createdPayload, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "video_123", "status": "queued", "model": "sora-2", "size": "720x1280", "seconds": "4"}`))
	})
	router.Get("/videos/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") != "video_123" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "video_123", "status": "processing", "progress": 42}`))
	})
	router.Get("/videos/{id}/content", func(w http.ResponseWriter, r *http.Request) {
		downloadVariant = r.URL.Query().Get("variant")
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = w.Write(videoBytes)
	})
	client, _ := newTestClient(t, router)

	job, err := client.CreateVideo(context.Background(), VideoRequest{
		Model:   "sora-2",
		Prompt:  "A cute baby polar bear walking in the snow",
		Size:    "720x1280",
		Seconds: "4",
	})
	if err != nil {
		t.Fatalf("create video: %v", err)
	}
	if job.ID != "video_123" || job.Status != StatusQueued {
		t.Fatalf("job = %+v", job)
	}

	var payload map[string]any
	if err := json.Unmarshal(createdPayload, &payload); err != nil {
		t.Fatalf("decode create payload: %v", err)
	}
	if payload["size"] != "720x1280" || payload["seconds"] != "4" {
		t.Fatalf("create payload = %v", payload)
	}

	job, err = client.RetrieveVideo(context.Background(), "video_123")
	if err != nil {
		t.Fatalf("retrieve video: %v", err)
	}
	if job.Status != StatusInProgress || job.Progress != 42 {
		t.Fatalf("retrieved job = %+v", job)
	}

	content, err := client.DownloadVideoContent(context.Background(), "video_123", "video")
	if err != nil {
		t.Fatalf("download content: %v", err)
	}
	if !bytes.Equal(content, videoBytes) {
		t.Fatalf("content mismatch: %v", content)
	}
	if downloadVariant != "video" {
		t.Fatalf("variant = %q, want video", downloadVariant)
	}
}
