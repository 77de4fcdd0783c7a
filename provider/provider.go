package provider

import (
	"context"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/config"
	groq_provider "github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/provider/groq"
)

// Client identifies a completion-service implementation.
type Client string

const (
	Groq Client = "groq"
	Mock Client = "mock"
)

// Completion is the interface the answer pipeline depends on. A call may
// fail with a generic error (network/auth/quota); the pipeline converts
// every failure into its fallback path, never a retry.
type Completion interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Kind() Client
}

// New selects a completion client from the configuration. A missing API
// key always yields the mock client: the service must keep answering
// without a credential.
func New(cfg config.GroqConfig) Completion {
	if cfg.APIKey == "" {
		return MockClient{}
	}
	return groqClient{inner: groq_provider.NewGroqClient(
		cfg.APIKey,
		cfg.Model,
		cfg.BaseURL,
		cfg.Temperature,
		cfg.MaxTokens,
		cfg.Timeout,
	)}
}

type groqClient struct {
	inner *groq_provider.GroqClient
}

func (g groqClient) Complete(ctx context.Context, prompt string) (string, error) {
	return g.inner.Complete(ctx, prompt)
}

func (g groqClient) Kind() Client { return Groq }

// MockClient is the development stand-in used when no credential is
// configured. It returns a fixed placeholder reply.
type MockClient struct{}

// MockReply is the fixed placeholder the mock client produces.
const MockReply = "यह एक परीक्षण उत्तर है। कृपया GROQ_API_KEY सेट करें।"

func (MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	return MockReply, nil
}

func (MockClient) Kind() Client { return Mock }
