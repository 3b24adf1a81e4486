package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/hugohenrick/agente-atendimento/internal/domain/product"
	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

// noResults é devolvido quando a busca não encontra nada útil
const noResults = "No relevant information found."

// Service executa a busca vetorial por similaridade nas tabelas de FAQs e
// embeddings de produtos, sempre filtrada por tenant. Toda falha degrada
// para contexto vazio: a recuperação nunca derruba um turno.
type Service struct {
	pool     *pgxpool.Pool
	embedder Embedder
	logger   logger.Logger
}

// NewService cria o serviço de recuperação de contexto
func NewService(pool *pgxpool.Pool, embedder Embedder, log logger.Logger) *Service {
	return &Service{pool: pool, embedder: embedder, logger: log}
}

type faqMatch struct {
	Question string
	Answer   string
}

type productMatch struct {
	Name        string
	Description string
	Category    string
	Price       float64
}

// Retrieve busca os documentos mais próximos da consulta e devolve o
// contexto formatado. O topK é dividido entre FAQs e produtos.
func (s *Service) Retrieve(ctx context.Context, tenantID, query string, topK int) string {
	if topK <= 0 {
		topK = 5
	}
	embedding := pgvector.NewVector(s.embedder.Embed(query))
	perSource := topK/2 + 1

	faqs := s.searchFAQs(ctx, tenantID, embedding, perSource)
	products := s.searchProducts(ctx, tenantID, embedding, perSource)

	var parts []string

	if len(faqs) > 0 {
		parts = append(parts, "=== Relevant FAQs ===")
		for _, f := range faqs {
			parts = append(parts, "Q: "+f.Question, "A: "+f.Answer, "")
		}
	}

	if len(products) > 0 {
		parts = append(parts, "=== Relevant Products ===")
		for _, p := range products {
			line := "Product: " + p.Name
			if p.Category != "" {
				line += fmt.Sprintf(" (Category: %s)", p.Category)
			}
			line += fmt.Sprintf(" - Price: $%.0f", p.Price)
			parts = append(parts, line)
			if p.Description != "" {
				parts = append(parts, "Description: "+p.Description)
			}
			parts = append(parts, "")
		}
	}

	context := strings.Join(parts, "\n")
	if strings.TrimSpace(context) == "" {
		return noResults
	}
	return context
}

func (s *Service) searchFAQs(ctx context.Context, tenantID string, embedding pgvector.Vector, limit int) []faqMatch {
	rows, err := s.pool.Query(ctx,
		`SELECT question, answer
		 FROM faqs
		 WHERE tenant_id = $1 AND embedding IS NOT NULL
		 ORDER BY embedding <=> $2
		 LIMIT $3`,
		tenantID, embedding, limit)
	if err != nil {
		s.logger.Warn("faq vector search failed", "tenant_id", tenantID, "error", err)
		return nil
	}
	defer rows.Close()

	var matches []faqMatch
	for rows.Next() {
		var m faqMatch
		if err := rows.Scan(&m.Question, &m.Answer); err != nil {
			s.logger.Warn("faq row scan failed", "error", err)
			continue
		}
		if m.Question != "" && m.Answer != "" {
			matches = append(matches, m)
		}
	}
	return matches
}

func (s *Service) searchProducts(ctx context.Context, tenantID string, embedding pgvector.Vector, limit int) []productMatch {
	rows, err := s.pool.Query(ctx,
		`SELECT p.name, p.description, p.category, p.price
		 FROM product_embeddings e
		 JOIN products p ON p.id = e.product_id
		 WHERE e.tenant_id = $1 AND p.is_active = true
		 ORDER BY e.embedding <=> $2
		 LIMIT $3`,
		tenantID, embedding, limit)
	if err != nil {
		s.logger.Warn("product vector search failed", "tenant_id", tenantID, "error", err)
		return nil
	}
	defer rows.Close()

	var matches []productMatch
	for rows.Next() {
		var m productMatch
		if err := rows.Scan(&m.Name, &m.Description, &m.Category, &m.Price); err != nil {
			s.logger.Warn("product row scan failed", "error", err)
			continue
		}
		if m.Name != "" {
			matches = append(matches, m)
		}
	}
	return matches
}

// AddFAQ insere uma FAQ do tenant já com seu embedding calculado
func (s *Service) AddFAQ(ctx context.Context, tenantID, question, answer string) error {
	embedding := pgvector.NewVector(s.embedder.Embed(question + " " + answer))

	_, err := s.pool.Exec(ctx,
		`INSERT INTO faqs (id, tenant_id, question, answer, embedding, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())`,
		uuid.New().String(), tenantID, question, answer, embedding)
	if err != nil {
		return fmt.Errorf("erro ao inserir faq: %w", err)
	}
	return nil
}

// IndexProduct calcula e grava o embedding de um produto para a busca
// vetorial
func (s *Service) IndexProduct(ctx context.Context, p *product.Product) error {
	content := strings.TrimSpace(p.Name + " " + p.Category + " " + p.Description)
	embedding := pgvector.NewVector(s.embedder.Embed(content))

	_, err := s.pool.Exec(ctx,
		`INSERT INTO product_embeddings (id, tenant_id, product_id, embedding, created_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (product_id) DO UPDATE SET embedding = EXCLUDED.embedding`,
		uuid.New().String(), p.TenantID, p.ID, embedding)
	if err != nil {
		return fmt.Errorf("erro ao indexar produto: %w", err)
	}
	return nil
}
