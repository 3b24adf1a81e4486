package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/hugohenrick/agente-atendimento/internal/adapter/repository"
	"github.com/hugohenrick/agente-atendimento/internal/aggregator"
	"github.com/hugohenrick/agente-atendimento/internal/infrastructure/database"
	"github.com/hugohenrick/agente-atendimento/pkg/logger"
)

// Job de agregação: consolida as estatísticas horárias de todos os tenants
// ativos e regenera os sinais de demanda da rede. Pensado para rodar por
// cron, fora do caminho das requisições.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	appLogger := logger.NewLogger()

	db, err := database.NewPostgresDB()
	if err != nil {
		log.Fatalf("Erro ao conectar com o banco de dados: %v", err)
	}
	defer db.Close()

	agg := aggregator.NewAggregator(
		repository.NewTenantRepository(db),
		repository.NewConversationRepository(db),
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewStatsRepository(db),
		appLogger,
	)

	hoursBack := envInt("STATS_HOURS_BACK", 24)
	daysBack := envInt("INSIGHT_DAYS_BACK", 7)
	minConfidence := envFloat("INSIGHT_MIN_CONFIDENCE", 0.6)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := agg.AggregateAllTenants(ctx, hoursBack); err != nil {
		log.Fatalf("Erro ao agregar estatísticas: %v", err)
	}

	signals, err := agg.GenerateNetworkInsights(ctx, daysBack, minConfidence)
	if err != nil {
		log.Fatalf("Erro ao gerar sinais de demanda: %v", err)
	}

	log.Printf("Agregação concluída: %d sinais de demanda gerados", len(signals))
}

func envInt(key string, defaultValue int) int {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func envFloat(key string, defaultValue float64) float64 {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
