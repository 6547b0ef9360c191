package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	hfModel   = "mistralai/Mistral-7B-Instruct-v0.3"
	hfTimeout = 30 * time.Second
)

// Generator is the optional text-generation collaborator backed by the
// HuggingFace Inference API. A Generator with no token is permanently
// disabled; callers fall back to templates.
type Generator struct {
	token  string
	apiURL string
	client *http.Client
	logger *logrus.Entry
}

// NewGenerator creates a Generator. An empty token disables the collaborator
// rather than producing errors later.
func NewGenerator(token string, logger *logrus.Entry) *Generator {
	return &Generator{
		token:  token,
		apiURL: fmt.Sprintf("https://api-inference.huggingface.co/models/%s", hfModel),
		client: &http.Client{Timeout: hfTimeout},
		logger: logger.WithField("component", "llm"),
	}
}

// Enabled reports whether the collaborator has a token to work with.
func (g *Generator) Enabled() bool {
	return g.token != ""
}

type hfParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

type hfResponse struct {
	GeneratedText string `json:"generated_text"`
}

// Generate asks the inference API for one line of text. It returns false on
// any failure, including rate limits and short or empty completions; the
// caller is expected to fall back to a template.
func (g *Generator) Generate(prompt string, maxTokens int) (string, bool) {
	if !g.Enabled() {
		return "", false
	}

	body, err := json.Marshal(hfRequest{
		Inputs: fmt.Sprintf("<s>[INST] %s [/INST]", prompt),
		Parameters: hfParameters{
			MaxNewTokens:   maxTokens,
			Temperature:    0.75,
			ReturnFullText: false,
		},
	})
	if err != nil {
		return "", false
	}

	req, err := http.NewRequest("POST", g.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.WithError(err).Debug("LLM_FALLBACK")
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.WithField("status", resp.StatusCode).Debug("LLM_FALLBACK")
		return "", false
	}

	raw, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", false
	}

	var completions []hfResponse
	if err := json.Unmarshal(raw, &completions); err != nil || len(completions) == 0 {
		return "", false
	}

	text := strings.TrimSpace(completions[0].GeneratedText)
	if len(text) <= 15 {
		return "", false
	}

	// first line only, sanitized to chat limits
	return Sanitize(strings.SplitN(text, "\n", 2)[0]), true
}
