package controller

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/api/dto"
	"github.com/hugohenrick/agente-atendimento/internal/adapter/repository"
	"github.com/hugohenrick/agente-atendimento/internal/aggregator"
	"github.com/hugohenrick/agente-atendimento/internal/domain/conversation"
	"github.com/hugohenrick/agente-atendimento/internal/domain/product"
	"github.com/hugohenrick/agente-atendimento/internal/domain/stats"
	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

const (
	peakHoursLimit       = 5
	topProductsLimit     = 5
	commonQuestionsLimit = 5
	defaultSignalsLimit  = 20
	defaultMinConfidence = 0.5
	insightDaysBack      = 7
)

// mentionIntents são as intenções consideradas na contagem de menções de
// produtos
var mentionIntents = []string{"faq", "order_create"}

// StatsController expõe as estatísticas por tenant e os sinais de demanda
// da rede
type StatsController struct {
	tenants       tenant.Repository
	conversations conversation.Repository
	products      product.Repository
	stats         stats.Repository
	aggregator    *aggregator.Aggregator
	logger        logger.Logger
}

// NewStatsController cria uma nova instância de StatsController
func NewStatsController(
	tenants tenant.Repository,
	conversations conversation.Repository,
	products product.Repository,
	statsRepo stats.Repository,
	agg *aggregator.Aggregator,
	log logger.Logger,
) *StatsController {
	return &StatsController{
		tenants:       tenants,
		conversations: conversations,
		products:      products,
		stats:         statsRepo,
		aggregator:    agg,
		logger:        log,
	}
}

// GetTenantStats retorna horas de pico, produtos mais mencionados e
// perguntas recorrentes de um tenant. As seções derivadas de mensagens são
// melhor-esforço e degradam para listas vazias.
func (c *StatsController) GetTenantStats(ctx *gin.Context) {
	tenantID := ctx.Param("tenantID")

	if _, err := c.tenants.FindByID(ctx, tenantID); err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Tenant não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar tenant", err.Error()))
		return
	}

	peaks, err := c.stats.PeakHours(ctx, tenantID, peakHoursLimit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao calcular horas de pico", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.TenantStatsResponse{
		TenantID:        tenantID,
		PeakHours:       dto.ToPeakHourResponseList(peaks),
		TopProducts:     c.topProductMentions(ctx, tenantID),
		CommonQuestions: c.commonQuestions(ctx, tenantID),
	})
}

// NetworkInsights retorna os sinais de demanda da rede acima da confiança
// mínima. Com regenerate=true, recalcula os sinais antes de listar.
func (c *StatsController) NetworkInsights(ctx *gin.Context) {
	minConfidence := defaultMinConfidence
	if raw := ctx.Query("min_confidence"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			minConfidence = parsed
		}
	}
	limit := defaultSignalsLimit
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	if ctx.Query("regenerate") == "true" {
		if _, err := c.aggregator.GenerateNetworkInsights(ctx, insightDaysBack, minConfidence); err != nil {
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar sinais de demanda", err.Error()))
			return
		}
	}

	signals, err := c.stats.ListSignals(ctx, limit, minConfidence)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar sinais de demanda", err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, dto.ToDemandSignalResponseList(signals))
}

// topProductMentions conta menções de produtos por substring nas mensagens
// de faq e pedido do tenant
func (c *StatsController) topProductMentions(ctx context.Context, tenantID string) []dto.ProductMentionResponse {
	messages, err := c.conversations.ListMessagesByIntent(ctx, tenantID, mentionIntents)
	if err != nil {
		c.logger.Warn("message listing failed for stats", "tenant_id", tenantID, "error", err)
		return []dto.ProductMentionResponse{}
	}
	products, err := c.products.ListActive(ctx, tenantID)
	if err != nil {
		c.logger.Warn("product listing failed for stats", "tenant_id", tenantID, "error", err)
		return []dto.ProductMentionResponse{}
	}

	mentions := make(map[string]int)
	names := make(map[string]string)
	for _, m := range messages {
		text := strings.ToLower(m.Text)
		for _, p := range products {
			if strings.Contains(text, strings.ToLower(p.Name)) {
				mentions[p.ID]++
				names[p.ID] = p.Name
			}
		}
	}

	out := make([]dto.ProductMentionResponse, 0, len(mentions))
	for id, count := range mentions {
		out = append(out, dto.ProductMentionResponse{ProductID: id, Name: names[id], Mentions: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mentions != out[j].Mentions {
			return out[i].Mentions > out[j].Mentions
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topProductsLimit {
		out = out[:topProductsLimit]
	}
	return out
}

// commonQuestions conta as perguntas literais mais repetidas pelos clientes
// (mensagens terminadas em "?", normalizadas para minúsculas)
func (c *StatsController) commonQuestions(ctx context.Context, tenantID string) []dto.QuestionCountResponse {
	messages, err := c.conversations.ListUserMessages(ctx, tenantID)
	if err != nil {
		c.logger.Warn("user message listing failed for stats", "tenant_id", tenantID, "error", err)
		return []dto.QuestionCountResponse{}
	}

	counts := make(map[string]int)
	for _, m := range messages {
		normalized := strings.ToLower(strings.TrimSpace(m.Text))
		if strings.HasSuffix(normalized, "?") {
			counts[normalized]++
		}
	}

	out := make([]dto.QuestionCountResponse, 0, len(counts))
	for question, count := range counts {
		out = append(out, dto.QuestionCountResponse{Question: question, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Question < out[j].Question
	})
	if len(out) > commonQuestionsLimit {
		out = out[:commonQuestionsLimit]
	}
	return out
}
