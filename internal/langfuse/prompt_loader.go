package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PromptConfig says where a prompt lives: Langfuse first, then the cached
// copy at CachePath, then Fallback.
type PromptConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	Name      string
	Label     string
	CachePath string
	Fallback  string

	HTTPClient *http.Client
}

var errPromptRemoteDisabled = errors.New("langfuse prompt management disabled")

// LoadPrompt resolves the prompt text. A successful remote fetch refreshes the
// local cache.
func LoadPrompt(ctx context.Context, cfg PromptConfig) (string, error) {
	if cfg.Name != "" {
		prompt, err := fetchPrompt(ctx, cfg)
		if err == nil {
			if err := writeCache(cfg.CachePath, prompt); err != nil {
				log.Printf("[langfuse] failed to cache prompt %q: %v", cfg.Name, err)
			}
			return prompt, nil
		}
		if !errors.Is(err, errPromptRemoteDisabled) {
			log.Printf("[langfuse] prompt %q fetch failed: %v", cfg.Name, err)
		}
	}

	if cfg.CachePath != "" {
		if data, err := os.ReadFile(cfg.CachePath); err == nil && strings.TrimSpace(string(data)) != "" {
			return string(data), nil
		}
	}
	if cfg.Fallback != "" {
		return cfg.Fallback, nil
	}
	return "", fmt.Errorf("prompt %q unavailable: no remote, cache or fallback", cfg.Name)
}

func fetchPrompt(ctx context.Context, cfg PromptConfig) (string, error) {
	if cfg.BaseURL == "" || cfg.PublicKey == "" || cfg.SecretKey == "" {
		return "", errPromptRemoteDisabled
	}

	u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/public/v2/prompts/" + url.PathEscape(cfg.Name)
	if cfg.Label != "" {
		q := u.Query()
		q.Set("label", cfg.Label)
		u.RawQuery = q.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call prompt API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Type   string          `json:"type"`
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode prompt response: %w", err)
	}

	switch payload.Type {
	case "", "text":
		var text string
		if err := json.Unmarshal(payload.Prompt, &text); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
		return text, nil
	case "chat":
		var messages []chatMessage
		if err := json.Unmarshal(payload.Prompt, &messages); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		return joinChat(messages), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", payload.Type)
	}
}

type chatMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

// joinChat flattens a chat prompt into one system prompt.
func joinChat(messages []chatMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		content := msg.Content
		if msg.Type == "placeholder" {
			if msg.Name == "" {
				continue
			}
			content = "{{" + msg.Name + "}}"
		}
		if content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		role := msg.Role
		if role == "" {
			role = "message"
		}
		b.WriteString(strings.ToUpper(role))
		b.WriteString(": ")
		b.WriteString(content)
	}
	return b.String()
}

func writeCache(path, prompt string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
