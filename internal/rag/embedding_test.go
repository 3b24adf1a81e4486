package rag

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashEmbedderIsDeterministic(t *testing.T) {
	e := NewHashEmbedder()
	a := e.Embed("¿cuál es el horario de atención?")
	b := e.Embed("¿cuál es el horario de atención?")
	assert.Equal(t, a, b)
	assert.Len(t, a, EmbeddingDim)
}

func TestHashEmbedderIsNormalized(t *testing.T) {
	e := NewHashEmbedder()
	vec := e.Embed("pizza margarita con queso")

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}

func TestHashEmbedderEmptyTextIsZeroVector(t *testing.T) {
	e := NewHashEmbedder()
	vec := e.Embed("")
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestHashEmbedderSharedVocabularyIsCloser(t *testing.T) {
	e := NewHashEmbedder()
	query := e.Embed("horario de atención")
	related := e.Embed("nuestro horario de atención es de 9 a 18")
	unrelated := e.Embed("pizza napolitana con albahaca fresca")

	assert.Greater(t, cosine(query, related), cosine(query, unrelated))
}

func TestTokenizeLowercasesAndStripsPunctuation(t *testing.T) {
	assert.Equal(t, []string{"qué", "hay", "de", "menú"}, tokenize("¿Qué hay de menú?"))
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
