package agent

import (
	"fmt"
	"math"
	"strconv"
)

// formatMoney formata um valor monetário sem decimais e com separador de
// milhar, no padrão exibido ao cliente (ex.: $12,500)
func formatMoney(amount float64) string {
	n := int64(math.Round(amount))

	negative := n < 0
	if negative {
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s", sign, string(grouped))
}
