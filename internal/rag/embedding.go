// Package rag implementa a recuperação de contexto da base de conhecimento:
// geração de embeddings, busca vetorial por similaridade filtrada por tenant
// e formatação do contexto entregue ao agente.
package rag

import (
	"hash/fnv"
	"math"
	"strings"
)

// EmbeddingDim é a dimensão dos vetores armazenados nas tabelas de
// embeddings. Precisa casar com o schema (vector(384)).
const EmbeddingDim = 384

// Embedder converte texto em um vetor de embedding
type Embedder interface {
	Embed(text string) []float32
}

// HashEmbedder gera embeddings determinísticos por hashing de n-gramas de
// palavras. Não captura semântica profunda, mas é estável, não depende de
// serviço externo e aproxima bem consultas com vocabulário compartilhado.
// Serve como implementação padrão até plugar um modelo real via Embedder.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder cria o embedder com a dimensão do schema
func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{dim: EmbeddingDim}
}

// Embed produz um vetor normalizado (norma 1) para o texto
func (h *HashEmbedder) Embed(text string) []float32 {
	vec := make([]float32, h.dim)

	tokens := tokenize(text)
	for _, tok := range tokens {
		h.accumulate(vec, tok, 1.0)
	}
	// bigramas dão peso a pares de palavras ("horario atencion")
	for i := 0; i+1 < len(tokens); i++ {
		h.accumulate(vec, tokens[i]+" "+tokens[i+1], 0.5)
	}

	normalize(vec)
	return vec
}

func (h *HashEmbedder) accumulate(vec []float32, token string, weight float32) {
	hasher := fnv.New64a()
	hasher.Write([]byte(token))
	sum := hasher.Sum64()

	idx := int(sum % uint64(h.dim))
	sign := float32(1)
	if (sum>>63)&1 == 1 {
		sign = -1
	}
	vec[idx] += sign * weight
}

func tokenize(text string) []string {
	return strings.Fields(strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r >= 'à' && r <= 'ÿ':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return ' '
		}
	}, text))
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
