package domain

// RewriteRequest is the body the add-in posts.
type RewriteRequest struct {
	EmailText string `json:"emailText"`
}

// RewriteResult is the structured rewrite suggestion. All four keys are always
// present; parts the email does not have are empty strings.
type RewriteResult struct {
	Subject           string `json:"subject"`
	OriginalGreeting  string `json:"original_greeting"`
	RewrittenBody     string `json:"rewritten_body"`
	OriginalSignature string `json:"original_signature"`
}

// ProviderConfig is the completion provider configuration, read once at startup.
type ProviderConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Temperature    float32
	CircuitBreaker bool
}

// Configured reports whether a credential is present.
func (c ProviderConfig) Configured() bool {
	return c.APIKey != ""
}

// String never includes the credential.
func (c ProviderConfig) String() string {
	key := "unset"
	if c.Configured() {
		key = "set"
	}
	return "ProviderConfig{BaseURL:" + c.BaseURL + " Model:" + c.Model + " APIKey:" + key + "}"
}
