package models

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms/openai"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGitHub = "github"
)

const (
	// GitHubModelsBaseURL is the base URL for the GitHub Models API, which
	// serves an OpenAI-compatible chat completions endpoint.
	GitHubModelsBaseURL = "https://models.github.ai/inference"

	// DefaultModel is used when no model name is configured.
	DefaultModel = "gpt-4o"
)

// ErrMissingToken is returned when a provider is created without credentials.
var ErrMissingToken = errors.New("models: api token is required")

// Options selects and configures a provider.
type Options struct {
	Provider string
	Model    string
	Token    string
	BaseURL  string
}

// New builds a model for the configured provider. An empty provider means
// OpenAI.
func New(o Options, extra ...openai.Option) (*LCGWrapper, error) {
	switch o.Provider {
	case "", ProviderOpenAI:
		return NewOpenAIModel(o.Model, o.Token, o.BaseURL, extra...)
	case ProviderGitHub:
		return NewGitHubModel(o.Model, o.Token, extra...)
	default:
		return nil, fmt.Errorf("models: unknown provider %q", o.Provider)
	}
}

// NewOpenAIModel creates a Model backed by the OpenAI chat completions API,
// or any OpenAI-compatible endpoint when baseURL is set.
//
// Additional openai.Option values are applied last so they can override the
// defaults (e.g. openai.WithHTTPClient).
func NewOpenAIModel(model, token, baseURL string, opts ...openai.Option) (*LCGWrapper, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: set llm.api_key or OPENAI_API_KEY", ErrMissingToken)
	}
	if model == "" {
		model = DefaultModel
	}

	baseOpts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(model),
	}
	if baseURL != "" {
		baseOpts = append(baseOpts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(append(baseOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create OpenAI client: %w", err)
	}
	return NewLCGWrapper(llm).WithModelName(model), nil
}

// githubHeaderTransport injects GitHub-specific headers into every request.
type githubHeaderTransport struct {
	base http.RoundTripper
}

func (t *githubHeaderTransport) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	return t.base.RoundTrip(req)
}

// NewGitHubModel creates a Model backed by the GitHub Models API.
//
// The token must be a GitHub fine-grained personal access token with the
// models:read permission. Model names use the publisher/model format, for
// example "openai/gpt-4o".
func NewGitHubModel(model, token string, opts ...openai.Option) (*LCGWrapper, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: create a fine-grained PAT with models:read", ErrMissingToken)
	}
	if model == "" {
		model = "openai/" + DefaultModel
	}

	baseOpts := []openai.Option{
		openai.WithBaseURL(GitHubModelsBaseURL),
		openai.WithToken(token),
		openai.WithModel(model),
		openai.WithHTTPClient(&githubHeaderTransport{base: http.DefaultTransport}),
	}

	llm, err := openai.New(append(baseOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create GitHub Models client: %w", err)
	}
	return NewLCGWrapper(llm).WithModelName(model), nil
}
