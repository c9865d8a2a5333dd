package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaProvider implements Provider against a local Ollama server through
// langchaingo. Ollama has no native schema enforcement, so schema requests
// switch the server to JSON mode, describe the schema in the system prompt
// and rely on validateResponse.
type OllamaProvider struct {
	model    string
	text     llms.Model
	jsonMode llms.Model
}

// NewOllamaProvider creates a provider for the configured Ollama model.
func NewOllamaProvider(cfg OllamaConfig) (*OllamaProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}
	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.ServerURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
	}

	text, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	jsonMode, err := ollama.New(append(opts, ollama.WithFormat("json"))...)
	if err != nil {
		return nil, fmt.Errorf("create ollama json client: %w", err)
	}
	return &OllamaProvider{model: cfg.Model, text: text, jsonMode: jsonMode}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	model := p.text
	system := req.System
	if req.Schema != nil {
		model = p.jsonMode
		def, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		system += fmt.Sprintf("\n\nRespond only with a JSON object matching this JSON Schema (%s):\n%s", req.Schema.Name, def)
	}

	var opts []llms.CallOption
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}
	opts = append(opts, llms.WithTemperature(req.Temperature))

	resp, err := model.GenerateContent(ctx, buildOllamaMessages(system, req.Messages), opts...)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &ErrProviderUnavailable{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("no choices in ollama response")}
	}

	choice := resp.Choices[0]
	usage := Usage{
		InputTokens:  intInfo(choice.GenerationInfo, "PromptTokens"),
		OutputTokens: intInfo(choice.GenerationInfo, "CompletionTokens"),
		TotalTokens:  intInfo(choice.GenerationInfo, "TotalTokens"),
	}
	stop := "end"
	if choice.StopReason == "length" {
		stop = "max_tokens"
	}
	return finish(req, choice.Content, p.model, stop, usage)
}

func (p *OllamaProvider) ModelID() string      { return p.model }
func (p *OllamaProvider) ProviderName() string { return ProviderOllama }

func buildOllamaMessages(system string, msgs []Message) []llms.MessageContent {
	out := make([]llms.MessageContent, 0, len(msgs)+1)
	if system != "" {
		out = append(out, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	for _, m := range msgs {
		role := llms.ChatMessageTypeHuman
		if m.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		out = append(out, llms.TextParts(role, m.Content))
	}
	return out
}

// intInfo reads a token count from langchaingo generation info, which
// carries plain ints for Ollama.
func intInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
