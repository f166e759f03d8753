// ABOUTME: OpenAI-compatible role invoker with function calling and retries
// ABOUTME: Works with OpenAI and OpenAI-compatible endpoints such as Gemini via OPENAI_BASE_URL
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/legal-crew/internal/logging"
	"github.com/harper/legal-crew/internal/util"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = openai.GPT4oMini

	// maxToolRounds bounds the number of tool-call exchanges in one invocation
	maxToolRounds = 8
)

// ChatCompleter is the subset of the OpenAI client used by the invoker
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey      string
	BaseURL     string
	ChatModel   string
	Temperature float32
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:      apiKey,
		ChatModel:   DefaultChatModel,
		Temperature: 0.7,
		Timeout:     60 * time.Second,
		MaxRetries:  3,
		RetryDelay:  2 * time.Second,
	}
}

// OpenAIClient invokes roles through the chat completions API
type OpenAIClient struct {
	client      ChatCompleter
	chatModel   string
	temperature float32
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
	logger      *log.Logger
}

// NewOpenAIClient creates a new client with the given API key using default configuration
func NewOpenAIClient(apiKey string, logger *log.Logger) (*OpenAIClient, error) {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey), logger)
}

// NewOpenAIClientWithConfig creates a new client with custom configuration
func NewOpenAIClientWithConfig(config *ClientConfig, logger *log.Logger) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	oaiConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		oaiConfig.BaseURL = config.BaseURL
	}

	return NewWithCompleter(openai.NewClientWithConfig(oaiConfig), config, logger), nil
}

// NewWithCompleter builds a client around any ChatCompleter
func NewWithCompleter(completer ChatCompleter, config *ClientConfig, logger *log.Logger) *OpenAIClient {
	model := config.ChatModel
	if model == "" {
		model = DefaultChatModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		client:      completer,
		chatModel:   model,
		temperature: config.Temperature,
		timeout:     timeout,
		maxRetries:  config.MaxRetries,
		retryDelay:  config.RetryDelay,
		logger:      logging.Component(logger, "Invoker"),
	}
}

// Invoke runs the role against the task, executing tool calls until the
// model returns a plain answer
func (c *OpenAIClient) Invoke(ctx context.Context, role Role, task string, tools ...Tool) (string, error) {
	logger := c.logger.With("role", role.ID)

	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt(role),
		},
		{
			Role:    openai.ChatMessageRoleUser,
			Content: task,
		},
	}

	byName := make(map[string]Tool, len(tools))
	for _, t := range tools {
		byName[t.Name] = t
	}

	for round := 0; round <= maxToolRounds; round++ {
		msg, err := c.complete(ctx, messages, tools)
		if err != nil {
			return "", fmt.Errorf("%w: role %s: %v", ErrUnavailable, role.ID, err)
		}

		if len(msg.ToolCalls) == 0 {
			logger.Debug("Role answered", "chars", len(msg.Content))
			return strings.TrimSpace(msg.Content), nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			output := c.callTool(ctx, byName, call)
			logger.Debug("Tool called", "tool", call.Function.Name, "result", output)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    output,
				Name:       call.Function.Name,
				ToolCallID: call.ID,
			})
		}
	}

	return "", fmt.Errorf("%w: role %s exceeded %d tool rounds", ErrUnavailable, role.ID, maxToolRounds)
}

// complete performs one chat completion with retries
func (c *OpenAIClient) complete(ctx context.Context, messages []openai.ChatCompletionMessage, tools []Tool) (openai.ChatCompletionMessage, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: c.temperature,
		Tools:       toolDefinitions(tools),
	}

	var msg openai.ChatCompletionMessage
	err := util.Retry(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context, attempt int) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		resp, err := c.client.CreateChatCompletion(callCtx, req)
		if err != nil {
			if isPermanent(err) {
				return util.Permanent(err)
			}
			c.logger.Warn("Chat completion failed", "attempt", attempt+1, "err", err)
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices returned")
		}
		msg = resp.Choices[0].Message
		return nil
	})
	return msg, err
}

// callTool executes a requested tool; failures are reported to the model as text
func (c *OpenAIClient) callTool(ctx context.Context, byName map[string]Tool, call openai.ToolCall) string {
	tool, ok := byName[call.Function.Name]
	if !ok || tool.Call == nil {
		return fmt.Sprintf("error: unknown tool %q", call.Function.Name)
	}
	out, err := tool.Call(ctx, json.RawMessage(call.Function.Arguments))
	if err != nil {
		return "error: " + err.Error()
	}
	return out
}

// isPermanent reports client errors that retrying cannot fix
func isPermanent(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.HTTPStatusCode
		return code >= 400 && code < 500 && code != http.StatusTooManyRequests && code != http.StatusRequestTimeout
	}
	return false
}

func toolDefinitions(tools []Tool) []openai.Tool {
	if len(tools) == 0 {
		return nil
	}
	defs := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		params := t.Parameters
		if params == nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		defs = append(defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  params,
			},
		})
	}
	return defs
}

func systemPrompt(role Role) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are %s.", role.Name))
	if role.Goal != "" {
		sb.WriteString("\nGoal: " + role.Goal)
	}
	if role.Backstory != "" {
		sb.WriteString("\n" + role.Backstory)
	}
	return sb.String()
}
