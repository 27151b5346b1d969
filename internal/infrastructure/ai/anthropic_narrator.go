package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicNarrator implementa NarrativeGenerator.
var _ ports.NarrativeGenerator = (*AnthropicNarrator)(nil)

const (
	DefaultBaseURL   = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	maxTokens        = 512
)

// Instrucciones de sistema por tema. El modelo recibe los hechos ya calculados y solo redacta.
var systemPrompts = map[string]string{
	ports.TopicUrgencyReasoning: `Eres un analista de abastecimiento. Con los datos del producto explica en una o dos frases,
en español, por qué debe reponerse con esa urgencia y por qué se eligió ese proveedor. No inventes cifras.`,
	ports.TopicMorningBriefing: `Eres el asistente del jefe de compras. Con los indicadores recibidos redacta un resumen matutino
de tres o cuatro frases en español: estado general, riesgos críticos y acción sugerida. No inventes cifras.`,
	ports.TopicNegotiationEmail: `Eres un comprador profesional. Redacta en español un correo breve y cordial al proveedor
solicitando mejores condiciones de precio o plazo, apoyándote en el historial recibido. Solo el cuerpo del correo.`,
}

// AnthropicNarrator adaptador que implementa NarrativeGenerator usando la API REST de Anthropic (Claude).
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicNarrator struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewAnthropicNarrator construye el adaptador. baseURL vacío usa la API pública.
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicNarrator(apiKey, model, baseURL string) *AnthropicNarrator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &AnthropicNarrator{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			// El caso de uso impone además un context.WithTimeout más corto.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Protocolo Messages API ────────────────────────────────────────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Explain envía el tema y los hechos a Claude y devuelve el texto concatenado de los bloques "text".
func (s *AnthropicNarrator) Explain(ctx context.Context, nc ports.NarrativeContext) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}
	system, ok := systemPrompts[nc.Topic]
	if !ok {
		return "", fmt.Errorf("AI: tema de narrativa desconocido %q", nc.Topic)
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []anthropicMessage{{Role: "user", Content: renderFacts(nc.Facts)}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var anthResp anthropicResponse
	if err := json.Unmarshal(rawBody, &anthResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}

	var sb strings.Builder
	for _, c := range anthResp.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}
	return text, nil
}

// renderFacts convierte los hechos en líneas "clave: valor" respetando su orden.
func renderFacts(facts []ports.NarrativeFact) string {
	var sb strings.Builder
	sb.WriteString("Datos:\n")
	for _, f := range facts {
		fmt.Fprintf(&sb, "- %s: %s\n", f.Key, f.Value)
	}
	return sb.String()
}
