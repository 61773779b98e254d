package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/JaideepCherukuri/vercelgateway-azurefoundry/internal/foundry"
	"github.com/JaideepCherukuri/vercelgateway-azurefoundry/internal/infra"
	"github.com/JaideepCherukuri/vercelgateway-azurefoundry/internal/storage"
)

// Model identifiers deployed on the target endpoint.
const (
	ModelChat  = "gpt-5.2-chat"
	ModelKimi  = "Kimi-K2.5"
	ModelCodex = "gpt-5.3-codex"
	ModelSora  = "sora-2"
)

const (
	chatPrompt  = "Explain quantum computing in one sentence."
	kimiPrompt  = "Write a haiku about artificial intelligence."
	codexPrompt = "Write a Python function to calculate fibonacci numbers"
	videoPrompt = "A cute baby polar bear walking in the snow"

	videoSize    = "720x1280"
	videoSeconds = "4"
	videoVariant = "video"

	codexDisplayLimit = 500
)

// SuiteOptions configures a probe suite.
type SuiteOptions struct {
	Client       *foundry.Client
	Store        *storage.FileStore
	Logger       *infra.Logger
	Out          io.Writer
	OutputName   string
	PollInterval time.Duration
	PollMaxWait  time.Duration
}

// Suite runs the four model probes sequentially against one deployment.
// Probes are isolated: one probe's failure never aborts the others.
type Suite struct {
	client       *foundry.Client
	store        *storage.FileStore
	logger       *infra.Logger
	out          io.Writer
	outputName   string
	pollInterval time.Duration
	pollMaxWait  time.Duration
}

// NewSuite validates options and constructs a Suite.
func NewSuite(opts SuiteOptions) (*Suite, error) {
	if opts.Client == nil {
		return nil, errors.New("check: client is required")
	}
	if opts.Store == nil {
		return nil, errors.New("check: artifact store is required")
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	outputName := opts.OutputName
	if outputName == "" {
		outputName = "sora_output.mp4"
	}
	return &Suite{
		client:       opts.Client,
		store:        opts.Store,
		logger:       logger,
		out:          out,
		outputName:   outputName,
		pollInterval: opts.PollInterval,
		pollMaxWait:  opts.PollMaxWait,
	}, nil
}

// Run executes all four probes in order and returns their results.
func (s *Suite) Run(ctx context.Context) []Result {
	probes := []struct {
		name string
		run  func(context.Context) Result
	}{
		{"GPT-5.2-chat", s.probeChat},
		{"Kimi-K2.5", s.probeKimi},
		{"GPT-5.3-codex", s.probeCodex},
		{"Sora-2", s.probeVideo},
	}

	results := make([]Result, 0, len(probes))
	for i, p := range probes {
		fmt.Fprintf(s.out, "\nTest %d: %s\n%s\n", i+1, p.name, rule('-', 50))
		res := p.run(ctx)
		if res.Passed {
			s.logger.Info().Str("probe", res.Name).Str("model", res.Model).Dur("elapsed", res.Elapsed).Msg("probe passed")
		} else {
			evt := s.logger.Error().Str("probe", res.Name).Str("model", res.Model).Dur("elapsed", res.Elapsed)
			if res.Err != nil {
				evt = evt.Err(res.Err)
				fmt.Fprintf(s.out, "Error: %v\n", res.Err)
			} else {
				fmt.Fprintf(s.out, "%s\n", res.Detail)
			}
			evt.Msg("probe failed")
		}
		results = append(results, res)
	}
	return results
}

func (s *Suite) probeChat(ctx context.Context) Result {
	started := time.Now()
	completion, err := s.client.CreateChatCompletion(ctx, foundry.ChatRequest{
		Model: ModelChat,
		Messages: []foundry.ChatMessage{
			{Role: "system", Content: "You are a helpful assistant."},
			{Role: "user", Content: chatPrompt},
		},
		MaxTokens: 100,
	})
	if err != nil {
		return fail("GPT-5.2-chat", ModelChat, err, time.Since(started))
	}
	content := completion.Content()
	if content == "" {
		return fail("GPT-5.2-chat", ModelChat, errors.New("empty completion content"), time.Since(started))
	}
	fmt.Fprintf(s.out, "Response: %s\n", content)
	printTokens(s.out, completion.Usage.TotalTokens)
	return pass("GPT-5.2-chat", ModelChat, content, time.Since(started))
}

func (s *Suite) probeKimi(ctx context.Context) Result {
	started := time.Now()
	completion, err := s.client.CreateChatCompletion(ctx, foundry.ChatRequest{
		Model: ModelKimi,
		Messages: []foundry.ChatMessage{
			{Role: "user", Content: kimiPrompt},
		},
		MaxTokens: 50,
	})
	if err != nil {
		return fail("Kimi-K2.5", ModelKimi, err, time.Since(started))
	}
	content := completion.Content()
	if content == "" {
		return fail("Kimi-K2.5", ModelKimi, errors.New("empty completion content"), time.Since(started))
	}
	fmt.Fprintf(s.out, "Response: %s\n", content)
	printTokens(s.out, completion.Usage.TotalTokens)
	return pass("Kimi-K2.5", ModelKimi, content, time.Since(started))
}

func (s *Suite) probeCodex(ctx context.Context) Result {
	started := time.Now()
	response, err := s.client.CreateResponse(ctx, foundry.ResponseRequest{
		Model: ModelCodex,
		Input: codexPrompt,
	})
	if err != nil {
		return fail("GPT-5.3-codex", ModelCodex, err, time.Since(started))
	}
	text := response.OutputText()
	if text == "" {
		return fail("GPT-5.3-codex", ModelCodex, errors.New("empty output text"), time.Since(started))
	}
	fmt.Fprintf(s.out, "Response:\n%s\n", truncate(text, codexDisplayLimit))
	printTokens(s.out, response.Usage.TotalTokens)
	return pass("GPT-5.3-codex", ModelCodex, truncate(text, codexDisplayLimit), time.Since(started))
}

func (s *Suite) probeVideo(ctx context.Context) Result {
	started := time.Now()
	fmt.Fprintln(s.out, "Creating video generation job...")
	job, err := s.client.CreateVideo(ctx, foundry.VideoRequest{
		Model:   ModelSora,
		Prompt:  videoPrompt,
		Size:    videoSize,
		Seconds: videoSeconds,
	})
	if err != nil {
		return fail("Sora-2", ModelSora, err, time.Since(started))
	}
	fmt.Fprintf(s.out, "Job %s created with status %s\n", job.ID, job.Status)

	job, err = foundry.PollVideo(ctx, s.client, job, foundry.PollOptions{
		Interval: s.pollInterval,
		MaxWait:  s.pollMaxWait,
		Logger:   s.logger,
	})
	if err != nil {
		return fail("Sora-2", ModelSora, err, time.Since(started))
	}
	if job.Status != foundry.StatusCompleted {
		// A failed or cancelled job is a normal negative outcome, not an
		// error; the distinct terminal status is preserved in the report.
		res := fail("Sora-2", ModelSora, nil, time.Since(started))
		res.Detail = fmt.Sprintf("video job ended %s", job.Status)
		return res
	}
	fmt.Fprintf(s.out, "Video generation completed (progress %d%%)\n", job.Progress)

	content, err := s.client.DownloadVideoContent(ctx, job.ID, videoVariant)
	if err != nil {
		return fail("Sora-2", ModelSora, err, time.Since(started))
	}
	path, err := s.store.WriteArtifact(ctx, s.outputName, content)
	if err != nil {
		return fail("Sora-2", ModelSora, err, time.Since(started))
	}
	fmt.Fprintf(s.out, "Video saved to %s\n", path)
	return pass("Sora-2", ModelSora, fmt.Sprintf("saved to %s", path), time.Since(started))
}

func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
