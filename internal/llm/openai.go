package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultBaseURL points at Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// FallbackModels is returned by Models when enumeration fails.
var FallbackModels = []string{"llama-3.3-70b-versatile"}

// Client implements Service using the openai-go SDK against any
// OpenAI-compatible chat-completions endpoint.
type Client struct {
	opts []option.RequestOption
}

// NewClient builds a Client for the given endpoint. baseURL may be empty, in
// which case the Groq endpoint is used.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("api key missing; set the configured API key environment variable")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{opts: []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}}, nil
}

// Stream drives a streaming chat completion, forwarding each content delta to
// onDelta and returning the concatenated output.
func (c *Client) Stream(ctx context.Context, model string, msgs []Message, onDelta func(string)) (string, error) {
	client := openai.NewClient(c.opts...)

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: toMessageParams(msgs),
	}

	stream := client.Chat.Completions.NewStreaming(ctx, params)
	var sb strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		sb.WriteString(delta)
		if onDelta != nil {
			onDelta(delta)
		}
	}
	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("generation stream: %w", err)
	}
	return sb.String(), nil
}

// Models lists the endpoint's available models. Any failure, including an
// empty listing, falls back to FallbackModels.
func (c *Client) Models(ctx context.Context) []string {
	client := openai.NewClient(c.opts...)

	page, err := client.Models.List(ctx)
	if err != nil || page == nil || len(page.Data) == 0 {
		out := make([]string, len(FallbackModels))
		copy(out, FallbackModels)
		return out
	}
	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids
}

func toMessageParams(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(m.Content))
		default:
			out = append(out, openai.UserMessage(m.Content))
		}
	}
	return out
}
