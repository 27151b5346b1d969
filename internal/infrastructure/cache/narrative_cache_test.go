package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Abastecimiento-api/internal/application/ports"
	"github.com/jhoicas/Abastecimiento-api/internal/infrastructure/cache"
)

type countingNarrator struct {
	calls int
	text  string
	err   error
}

func (c *countingNarrator) Explain(_ context.Context, _ ports.NarrativeContext) (string, error) {
	c.calls++
	return c.text, c.err
}

func newCached(t *testing.T, next ports.NarrativeGenerator) (*cache.CachedNarrator, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewCachedNarrator(next, client, time.Minute), mr
}

func nc(value string) ports.NarrativeContext {
	return ports.NarrativeContext{
		Topic: ports.TopicUrgencyReasoning,
		Facts: []ports.NarrativeFact{{Key: "sku", Value: value}},
	}
}

func TestCachedNarrator_SegundaLlamadaUsaCache(t *testing.T) {
	next := &countingNarrator{text: "reponer ya"}
	c, mr := newCached(t, next)

	first, err := c.Explain(context.Background(), nc("A-1"))
	require.NoError(t, err)
	second, err := c.Explain(context.Background(), nc("A-1"))
	require.NoError(t, err)

	assert.Equal(t, "reponer ya", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)
	assert.True(t, mr.Exists(cache.Key(nc("A-1"))))
	assert.Equal(t, time.Minute, mr.TTL(cache.Key(nc("A-1"))))
}

func TestCachedNarrator_HechosDistintosNoComparten(t *testing.T) {
	next := &countingNarrator{text: "x"}
	c, _ := newCached(t, next)

	_, _ = c.Explain(context.Background(), nc("A-1"))
	_, _ = c.Explain(context.Background(), nc("A-2"))

	assert.Equal(t, 2, next.calls)
	assert.NotEqual(t, cache.Key(nc("A-1")), cache.Key(nc("A-2")))
}

func TestCachedNarrator_ErrorNoSeCachea(t *testing.T) {
	next := &countingNarrator{err: errors.New("sin red")}
	c, mr := newCached(t, next)

	_, err := c.Explain(context.Background(), nc("A-1"))
	require.Error(t, err)
	assert.False(t, mr.Exists(cache.Key(nc("A-1"))))
}

func TestCachedNarrator_RedisCaidoDelegaEnGenerador(t *testing.T) {
	next := &countingNarrator{text: "texto"}
	c, mr := newCached(t, next)
	mr.Close()

	text, err := c.Explain(context.Background(), nc("A-1"))
	require.NoError(t, err)
	assert.Equal(t, "texto", text)
}

func TestKey_IncluyeTema(t *testing.T) {
	a := nc("A-1")
	b := a
	b.Topic = ports.TopicMorningBriefing
	assert.NotEqual(t, cache.Key(a), cache.Key(b))
	assert.Contains(t, cache.Key(a), "narrative:urgency_reasoning:")
}
