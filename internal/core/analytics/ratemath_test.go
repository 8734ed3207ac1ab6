package analytics_test

import (
	"testing"

	"github.com/mkaral/testplan-backend/internal/core/analytics"
	"github.com/stretchr/testify/assert"
)

func TestRate(t *testing.T) {
	t.Run("rounds half up to two decimals", func(t *testing.T) {
		assert.Equal(t, 33.33, analytics.Rate(1, 3))
		assert.Equal(t, 66.67, analytics.Rate(2, 3))
		assert.Equal(t, 50.0, analytics.Rate(4, 8))
		assert.Equal(t, 100.0, analytics.Rate(5, 5))
	})

	t.Run("zero denominator yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, analytics.Rate(10, 0))
		assert.Equal(t, 0.0, analytics.Rate(0, 0))
	})

	t.Run("negative denominator yields zero", func(t *testing.T) {
		assert.Equal(t, 0.0, analytics.Rate(1, -4))
	})
}

func TestFormatFixed(t *testing.T) {
	assert.Equal(t, 1.24, analytics.FormatFixed(1.235, 2))
	assert.Equal(t, 1.23, analytics.FormatFixed(1.234, 2))
	assert.Equal(t, 2.0, analytics.FormatFixed(1.5, 0))
	assert.Equal(t, 0.0, analytics.FormatFixed(0, 2))
}

func TestDivideOr(t *testing.T) {
	assert.Equal(t, 2.5, analytics.DivideOr(5, 2, 99))
	assert.Equal(t, 99.0, analytics.DivideOr(5, 0, 99))
	assert.Equal(t, 99.0, analytics.DivideOr(5, -1, 99))
}
