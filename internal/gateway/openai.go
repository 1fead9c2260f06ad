package gateway

import (
	"context"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type implOpenAI struct {
	model string
	opts  []option.RequestOption
}

// newOpenAI creates a Gateway backed by the official openai-go SDK
// (chat completions).
func newOpenAI(apiKey, model, baseURL string) Gateway {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &implOpenAI{model: model, opts: opts}
}

func (o *implOpenAI) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{}
	if systemPrompt != "" {
		msgs = append(msgs, openai.SystemMessage(systemPrompt))
	}
	msgs = append(msgs, openai.UserMessage(userPrompt))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: msgs,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &ServiceError{Message: "chat completion", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ServiceError{Message: "empty choices from OpenAI"}
	}

	return resp.Choices[0].Message.Content, nil
}
