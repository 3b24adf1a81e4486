package agent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
)

func at(hour, minute int) time.Time {
	// 2 de março de 2026 é uma segunda-feira
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestIsWithinHours(t *testing.T) {
	tests := []struct {
		name string
		spec string
		time time.Time
		open bool
	}{
		{"dentro do intervalo", "09:00-18:00", at(12, 30), true},
		{"no limite inicial", "09:00-18:00", at(9, 0), true},
		{"no limite final", "09:00-18:00", at(18, 0), true},
		{"antes de abrir", "09:00-18:00", at(8, 59), false},
		{"depois de fechar", "09:00-18:00", at(18, 1), false},
		{"fechado o dia todo", "closed", at(12, 0), false},
		{"spec vazia", "", at(12, 0), false},
		{"turno partido, primeiro turno", "08:00-12:00,16:00-20:00", at(10, 0), true},
		{"turno partido, intervalo do almoço", "08:00-12:00,16:00-20:00", at(14, 0), false},
		{"turno partido, segundo turno", "08:00-12:00,16:00-20:00", at(19, 59), true},
		{"fim a meia-noite vale até 23:59", "12:00-00:00", at(23, 59), true},
		{"fim a meia-noite, antes da abertura", "12:00-00:00", at(11, 0), false},
		{"aberto o dia todo", "00:00-00:00", at(0, 0), true},
		{"intervalo malformado", "9h-18h", at(12, 0), false},
		{"sem separador", "0900", at(12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, isWithinHours(tt.spec, tt.time))
		})
	}
}

func TestCheckBusinessHoursUsesTenantTimezone(t *testing.T) {
	tn := &tenant.Tenant{
		Timezone: "America/Bogota",
		Config: tenant.Config{BusinessHours: tenant.BusinessHours{
			"monday": "09:00-18:00",
		}},
	}

	// 20:00 UTC de segunda é 15:00 em Bogotá, dentro do expediente
	status := checkBusinessHours(tn, at(20, 0))
	assert.True(t, status.Open)
	assert.Equal(t, "monday", status.Day)
	assert.Equal(t, "09:00-18:00", status.Spec)
}

func TestCheckBusinessHoursUnconfiguredDayIsClosed(t *testing.T) {
	tn := &tenant.Tenant{
		Timezone: "UTC",
		Config:   tenant.Config{BusinessHours: tenant.BusinessHours{"sunday": "10:00-14:00"}},
	}

	status := checkBusinessHours(tn, at(12, 0))
	assert.False(t, status.Open)
	assert.Equal(t, "closed", status.Spec)
}
