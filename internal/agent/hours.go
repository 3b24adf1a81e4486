package agent

import (
	"strings"
	"time"

	"github.com/hugohenrick/agente-atendimento/internal/domain/tenant"
)

// hoursStatus é o resultado da verificação de horário de funcionamento
type hoursStatus struct {
	Open  bool
	Day   string
	Spec  string
	Local time.Time
}

// checkBusinessHours avalia se o tenant está aberto no instante informado,
// convertido para o fuso do próprio tenant
func checkBusinessHours(t *tenant.Tenant, now time.Time) hoursStatus {
	local := now.In(t.Location())
	day := strings.ToLower(local.Weekday().String())
	spec := t.HoursFor(day)

	return hoursStatus{
		Open:  isWithinHours(spec, local),
		Day:   day,
		Spec:  spec,
		Local: local,
	}
}

// isWithinHours avalia uma especificação de horário contra o instante local.
// Aceita múltiplos turnos separados por vírgula ("08:00-12:00,16:00-20:00"),
// trata "closed" como fechado o dia todo e interpreta fim "00:00" como o
// último minuto do dia. Intervalos malformados contam como fechados.
func isWithinHours(spec string, local time.Time) bool {
	spec = strings.TrimSpace(strings.ToLower(spec))
	if spec == "" || spec == "closed" {
		return false
	}

	minute := local.Hour()*60 + local.Minute()

	for _, window := range strings.Split(spec, ",") {
		parts := strings.SplitN(strings.TrimSpace(window), "-", 2)
		if len(parts) != 2 {
			continue
		}

		start, okStart := parseClock(parts[0])
		end, okEnd := parseClock(parts[1])
		if !okStart || !okEnd {
			continue
		}

		// meia-noite como fim do expediente significa até 23:59
		if end == 0 {
			end = 23*60 + 59
		}

		if minute >= start && minute <= end {
			return true
		}
	}
	return false
}

// parseClock converte "HH:MM" em minutos desde a meia-noite
func parseClock(s string) (int, bool) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return parsed.Hour()*60 + parsed.Minute(), true
}
