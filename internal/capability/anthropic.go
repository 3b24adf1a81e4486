package capability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

const (
	anthropicAPIEndpoint = "https://api.anthropic.com/v1/messages"
	defaultModel         = "claude-3-5-haiku-20241022"
)

// AnthropicClient implementa as quatro capacidades sobre a API de Messages
// da Anthropic. Uma instância atende todas as chamadas do processo.
type AnthropicClient struct {
	apiKey string
	model  string
	client *http.Client
	logger logger.Logger
}

// NewAnthropicClient cria o cliente a partir das variáveis de ambiente
// ANTHROPIC_API_KEY e ANTHROPIC_MODEL (opcional)
func NewAnthropicClient(log logger.Logger) (*AnthropicClient, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY não encontrada nas variáveis de ambiente")
	}

	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &AnthropicClient{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: log,
	}, nil
}

type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []apiMessage `json:"messages"`
	System    string       `json:"system,omitempty"`
}

type messageResponse struct {
	ID      string `json:"id"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// complete envia uma única mensagem de usuário e retorna o texto da resposta
func (c *AnthropicClient) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	reqBody := messageRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []apiMessage{{Role: "user", Content: user}},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicAPIEndpoint, bytes.NewBuffer(reqJSON))
	if err != nil {
		return "", fmt.Errorf("erro ao criar requisição HTTP: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro na comunicação com o serviço de IA: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("API retornou erro", "status", resp.Status, "body", string(respBody))
		return "", fmt.Errorf("API error (código %d)", resp.StatusCode)
	}

	var apiResp messageResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	text := ""
	for _, content := range apiResp.Content {
		if content.Type == "text" {
			text += content.Text
		}
	}

	c.logger.Debug("Resposta da API processada",
		"model", apiResp.Model,
		"input_tokens", apiResp.Usage.InputTokens,
		"output_tokens", apiResp.Usage.OutputTokens,
		"stop_reason", apiResp.StopReason)

	return text, nil
}

// Classify implementa Classifier
func (c *AnthropicClient) Classify(ctx context.Context, message, hint string) (string, error) {
	raw, err := c.complete(ctx, "", BuildIntentPrompt(message, hint), 16)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(raw)), nil
}

// ExtractItems implementa Extractor
func (c *AnthropicClient) ExtractItems(ctx context.Context, catalog []CatalogItem, message string) ([]CandidateItem, error) {
	raw, err := c.complete(ctx, "", BuildExtractionPrompt(catalog, message), 1024)
	if err != nil {
		return nil, err
	}
	return DecodeItems(raw), nil
}

// Analyze implementa Sentiment
func (c *AnthropicClient) Analyze(ctx context.Context, message string) (Analysis, error) {
	raw, err := c.complete(ctx, "", BuildSentimentPrompt(message), 256)
	if err != nil {
		return Analysis{}, err
	}
	return DecodeAnalysis(raw), nil
}

// Respond implementa Responder
func (c *AnthropicClient) Respond(ctx context.Context, system, prompt string) (string, error) {
	return c.complete(ctx, system, prompt, 1024)
}
