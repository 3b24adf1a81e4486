package stats

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidHour = errors.New("hora deve estar entre 0 e 23")

// TenantStat agrega as interações de um tenant em um dia e hora específicos
type TenantStat struct {
	ID                string    `json:"id"`
	TenantID          string    `json:"tenant_id"`
	Date              time.Time `json:"date"`
	Hour              int       `json:"hour"`
	InteractionsCount int       `json:"interactions_count"`
	OrdersCount       int       `json:"orders_count"`
	TopProductID      string    `json:"top_product_id,omitempty"`
}

// NewTenantStat cria um registro de estatística horária
func NewTenantStat(tenantID string, date time.Time, hour int) (*TenantStat, error) {
	if hour < 0 || hour > 23 {
		return nil, ErrInvalidHour
	}
	return &TenantStat{
		ID:       uuid.New().String(),
		TenantID: tenantID,
		Date:     date,
		Hour:     hour,
	}, nil
}

// DemandSignal é um padrão de demanda agregado entre tenants, sem expor
// dados identificáveis de um negócio individual
type DemandSignal struct {
	ID              string            `json:"id"`
	Description     string            `json:"description"`
	ConfidenceScore float64           `json:"confidence_score"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// NewDemandSignal cria um sinal de demanda com confiança no intervalo [0,1]
func NewDemandSignal(description string, confidence float64, metadata map[string]string) *DemandSignal {
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}
	return &DemandSignal{
		ID:              uuid.New().String(),
		Description:     description,
		ConfidenceScore: confidence,
		Metadata:        metadata,
		CreatedAt:       time.Now(),
	}
}

// HourCount é um par hora/contagem usado no cálculo de horários de pico
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}
