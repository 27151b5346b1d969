package procurement

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
)

// DefaultNarrativeTimeout tiempo máximo de espera por el generador de texto.
const DefaultNarrativeTimeout = 10 * time.Second

// narrator envuelve el generador de narrativa: aplica timeout y sustituye el texto de respaldo
// ante error o respuesta vacía. Nunca propaga el error al cálculo.
type narrator struct {
	gen     ports.NarrativeGenerator
	timeout time.Duration
}

func newNarrator(gen ports.NarrativeGenerator, timeout time.Duration) narrator {
	if timeout <= 0 {
		timeout = DefaultNarrativeTimeout
	}
	return narrator{gen: gen, timeout: timeout}
}

func (n narrator) explain(ctx context.Context, nc ports.NarrativeContext, fallback string) string {
	if n.gen == nil {
		return fallback
	}
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	text, err := n.gen.Explain(ctx, nc)
	if err != nil {
		log.Warn().Err(err).Str("topic", nc.Topic).Msg("narrativa no disponible, se usa texto de respaldo")
		return fallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn().Str("topic", nc.Topic).Msg("narrativa vacía, se usa texto de respaldo")
		return fallback
	}
	return text
}

func fact(key, value string) ports.NarrativeFact {
	return ports.NarrativeFact{Key: key, Value: value}
}
