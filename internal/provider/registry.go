package provider

// Base URLs and default models for the supported analysis backends.
const (
	openAIBaseURL   = "https://api.openai.com/v1"
	deepSeekBaseURL = "https://api.deepseek.com/v1"
	grokBaseURL     = "https://api.x.ai/v1"
)

// Credentials holds the per-backend API keys and model overrides used to
// declare the provider set.
type Credentials struct {
	OpenAIKey     string
	OpenAIModel   string
	DeepSeekKey   string
	DeepSeekModel string
	GrokKey       string
	GrokModel     string
}

// Registry holds the declared provider set. Declaration order is part of
// the consensus contract: emotion ties and key-point selection break
// toward earlier providers.
type Registry struct {
	providers []Provider
}

// NewRegistry declares the fixed backend set in consensus order:
// OpenAI, DeepSeek, Grok. Backends without a key stay declared but
// abstain from every call.
func NewRegistry(creds Credentials) *Registry {
	return &Registry{
		providers: []Provider{
			NewChatProvider(ChatConfig{
				Name:     "chatgpt",
				BaseURL:  openAIBaseURL,
				Model:    creds.OpenAIModel,
				APIKey:   creds.OpenAIKey,
				JSONMode: true,
			}),
			NewChatProvider(ChatConfig{
				Name:    "deepseek",
				BaseURL: deepSeekBaseURL,
				Model:   creds.DeepSeekModel,
				APIKey:  creds.DeepSeekKey,
			}),
			NewChatProvider(ChatConfig{
				Name:    "grok",
				BaseURL: grokBaseURL,
				Model:   creds.GrokModel,
				APIKey:  creds.GrokKey,
			}),
		},
	}
}

// Providers returns the full declared set, abstaining backends included.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// Active returns only the providers holding a credential.
func (r *Registry) Active() []Provider {
	var active []Provider
	for _, p := range r.providers {
		if p.Configured() {
			active = append(active, p)
		}
	}
	return active
}
