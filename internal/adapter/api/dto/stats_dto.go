package dto

import (
	"time"

	"github.com/hugohenrick/agente-atendimento/internal/domain/stats"
)

// PeakHourResponse é um par hora/interações das horas de maior movimento
type PeakHourResponse struct {
	Hour         int `json:"hour"`
	Interactions int `json:"interactions"`
}

// ProductMentionResponse é a contagem de menções de um produto nas conversas
type ProductMentionResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Mentions  int    `json:"mentions"`
}

// QuestionCountResponse é a contagem de uma pergunta recorrente dos clientes
type QuestionCountResponse struct {
	Question string `json:"question"`
	Count    int    `json:"count"`
}

// TenantStatsResponse agrega as estatísticas de uso de um tenant
type TenantStatsResponse struct {
	TenantID        string                   `json:"tenant_id"`
	PeakHours       []PeakHourResponse       `json:"peak_hours"`
	TopProducts     []ProductMentionResponse `json:"top_products"`
	CommonQuestions []QuestionCountResponse  `json:"common_questions"`
}

// DemandSignalResponse representa um sinal de demanda da rede na API
type DemandSignalResponse struct {
	ID              string            `json:"id"`
	Description     string            `json:"description"`
	ConfidenceScore float64           `json:"confidence_score"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ToPeakHourResponseList converte os pares hora/contagem do domínio
func ToPeakHourResponseList(peaks []stats.HourCount) []PeakHourResponse {
	out := make([]PeakHourResponse, 0, len(peaks))
	for _, p := range peaks {
		out = append(out, PeakHourResponse{Hour: p.Hour, Interactions: p.Count})
	}
	return out
}

// ToDemandSignalResponseList converte sinais de demanda do domínio
func ToDemandSignalResponseList(signals []stats.DemandSignal) []DemandSignalResponse {
	out := make([]DemandSignalResponse, 0, len(signals))
	for _, s := range signals {
		out = append(out, DemandSignalResponse{
			ID:              s.ID,
			Description:     s.Description,
			ConfidenceScore: s.ConfidenceScore,
			Metadata:        s.Metadata,
			CreatedAt:       s.CreatedAt,
		})
	}
	return out
}
