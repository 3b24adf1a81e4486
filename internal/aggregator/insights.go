package aggregator

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/hugohenrick/agente-atendimento/internal/domain/stats"
	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
)

// statsWindowLimit limita quantos registros horários entram na análise por
// tenant (7 dias x 24 horas com folga)
const statsWindowLimit = 500

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// GenerateNetworkInsights analisa as estatísticas agregadas de todos os
// tenants e grava sinais de demanda da rede: horas de pico por tipo de
// negócio, dias fortes por tipo e demanda de categoria por hora. Os sinais
// nunca identificam um tenant individual.
func (a *Aggregator) GenerateNetworkInsights(ctx context.Context, daysBack int, minConfidence float64) ([]stats.DemandSignal, error) {
	tenants, err := a.tenants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar tenants: %w", err)
	}

	cutoff := a.now().UTC().AddDate(0, 0, -daysBack)

	typeHour := make(map[tenant.Type]map[int]int)
	typeDay := make(map[tenant.Type]map[int]int)
	categoryHour := make(map[string]map[int]int)

	for _, t := range tenants {
		records, err := a.stats.ListByTenant(ctx, t.ID, statsWindowLimit)
		if err != nil {
			a.logger.Warn("stats listing failed for insights", "tenant_id", t.ID, "error", err)
			continue
		}

		categories, err := a.productCategories(ctx, t.ID)
		if err != nil {
			a.logger.Warn("product category lookup failed", "tenant_id", t.ID, "error", err)
		}

		for _, s := range records {
			if s.Date.Before(cutoff) {
				continue
			}

			addCount(typeHour, t.Type, s.Hour, s.InteractionsCount)
			addCount(typeDay, t.Type, weekdayIndex(s.Date), s.InteractionsCount)

			if s.TopProductID != "" {
				if category, ok := categories[s.TopProductID]; ok && category != "" {
					addCount(categoryHour, category, s.Hour, s.InteractionsCount)
				}
			}
		}
	}

	var signals []stats.DemandSignal

	// horas de pico por tipo de negócio
	for businessType, hourData := range typeHour {
		total := sumCounts(hourData)
		if total == 0 {
			continue
		}
		for _, peak := range topEntries(hourData, 3) {
			confidence := clampConfidence(float64(peak.count) / float64(total) * 3)
			if confidence < minConfidence {
				continue
			}
			signals = append(signals, *stats.NewDemandSignal(
				fmt.Sprintf("High activity for %s businesses during %s", businessType, hourRange(peak.key)),
				confidence,
				map[string]string{
					"pattern_type":  "business_type_peak_hour",
					"business_type": string(businessType),
					"hour":          strconv.Itoa(peak.key),
					"hour_range":    hourRange(peak.key),
				}))
		}
	}

	// dias da semana mais fortes por tipo de negócio
	for businessType, dayData := range typeDay {
		total := sumCounts(dayData)
		if total == 0 {
			continue
		}
		for _, peak := range topEntries(dayData, 2) {
			confidence := clampConfidence(float64(peak.count) / float64(total) * 2)
			if confidence < minConfidence {
				continue
			}
			signals = append(signals, *stats.NewDemandSignal(
				fmt.Sprintf("Increased demand for %s businesses on %s", businessType, dayNames[peak.key]),
				confidence,
				map[string]string{
					"pattern_type":  "day_of_week_pattern",
					"business_type": string(businessType),
					"day_of_week":   strconv.Itoa(peak.key),
					"day_name":      dayNames[peak.key],
				}))
		}
	}

	// demanda de categoria de produto por hora
	for category, hourData := range categoryHour {
		total := sumCounts(hourData)
		if total < 5 {
			continue
		}
		for _, peak := range topEntries(hourData, 2) {
			confidence := clampConfidence(float64(peak.count) / float64(total) * 2)
			if confidence < minConfidence {
				continue
			}
			signals = append(signals, *stats.NewDemandSignal(
				fmt.Sprintf("High demand for %s products during %s", category, hourRange(peak.key)),
				confidence,
				map[string]string{
					"pattern_type": "product_category_hour",
					"category":     category,
					"hour":         strconv.Itoa(peak.key),
					"hour_range":   hourRange(peak.key),
				}))
		}
	}

	var stored []stats.DemandSignal
	for i := range signals {
		if err := a.stats.CreateSignal(ctx, &signals[i]); err != nil {
			a.logger.Error("demand signal persistence failed", "error", err)
			continue
		}
		stored = append(stored, signals[i])
	}

	a.logger.Info("generated network insights", "signals", len(stored))
	return stored, nil
}

func (a *Aggregator) productCategories(ctx context.Context, tenantID string) (map[string]string, error) {
	products, err := a.products.ListActive(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	categories := make(map[string]string, len(products))
	for _, p := range products {
		categories[p.ID] = p.Category
	}
	return categories, nil
}

type bucketEntry struct {
	key   int
	count int
}

func addCount[K comparable](m map[K]map[int]int, key K, bucket, count int) {
	inner, ok := m[key]
	if !ok {
		inner = make(map[int]int)
		m[key] = inner
	}
	inner[bucket] += count
}

func sumCounts(m map[int]int) int {
	total := 0
	for _, c := range m {
		total += c
	}
	return total
}

// topEntries retorna os n buckets de maior contagem, com desempate pelo
// menor índice para manter a saída determinística
func topEntries(m map[int]int, n int) []bucketEntry {
	entries := make([]bucketEntry, 0, len(m))
	for k, c := range m {
		entries = append(entries, bucketEntry{key: k, count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

func clampConfidence(c float64) float64 {
	if c > 1 {
		return 1
	}
	return c
}

// weekdayIndex converte para o índice segunda=0..domingo=6
func weekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

func hourRange(hour int) string {
	return fmt.Sprintf("%02d:00-%02d:00", hour, (hour+1)%24)
}
