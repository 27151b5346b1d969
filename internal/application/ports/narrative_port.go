package ports

import "context"

// Temas de narrativa soportados.
const (
	TopicUrgencyReasoning = "urgency_reasoning"
	TopicMorningBriefing  = "morning_briefing"
	TopicNegotiationEmail = "negotiation_email"
)

// NarrativeFact dato clave-valor que alimenta el texto generado.
type NarrativeFact struct {
	Key   string
	Value string
}

// NarrativeContext tema y hechos a narrar. El orden de Facts es significativo.
type NarrativeContext struct {
	Topic string
	Facts []NarrativeFact
}

// NarrativeGenerator define el puerto de salida para generar texto legible (briefings, razonamientos, correos).
// Cualquier adaptador (Anthropic, caché, stub) debe implementar esta interfaz.
// El texto es cosmético: ninguna decisión del motor depende de él.
type NarrativeGenerator interface {
	// Explain devuelve el texto para el contexto dado.
	// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
	Explain(ctx context.Context, nc NarrativeContext) (string, error)
}
