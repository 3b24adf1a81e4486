package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0", formatMoney(0))
	assert.Equal(t, "$950", formatMoney(950))
	assert.Equal(t, "$1,000", formatMoney(1000))
	assert.Equal(t, "$12,500", formatMoney(12500))
	assert.Equal(t, "$1,234,568", formatMoney(1234567.89))
	assert.Equal(t, "-$1,500", formatMoney(-1500))
}
