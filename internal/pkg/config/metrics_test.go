package config

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// Component names are unique per test because promauto registers with the
// default registry and panics on duplicates.

func TestNewConfigMetrics_AllCollectorsInitialized(t *testing.T) {
	m := NewConfigMetrics("cfgtest_init")

	assert.NotNil(t, m.LoadTimestamp)
	assert.NotNil(t, m.ValidationErrorsTotal)
	assert.NotNil(t, m.FallbacksTotal)
	assert.NotNil(t, m.FallbackActive)
}

func TestRecordLoadTimestamp(t *testing.T) {
	m := NewConfigMetrics("cfgtest_load")

	m.RecordLoadTimestamp()

	got := testutil.ToFloat64(m.LoadTimestamp)
	assert.InDelta(t, float64(time.Now().Unix()), got, 5)
}

func TestRecordValidationError_CountsPerField(t *testing.T) {
	m := NewConfigMetrics("cfgtest_validation")

	m.RecordValidationError("digest_cron")
	m.RecordValidationError("digest_cron")
	m.RecordValidationError("timezone")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("digest_cron")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("timezone")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("digest_timeout")))
}

func TestRecordFallback_CountsPerField(t *testing.T) {
	m := NewConfigMetrics("cfgtest_fallback")

	m.RecordFallback("digest_timeout")
	m.RecordFallback("digest_timeout")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("digest_timeout")))
}

func TestSetFallbackActive_Toggles(t *testing.T) {
	m := NewConfigMetrics("cfgtest_active")

	m.SetFallbackActive(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FallbackActive))

	m.SetFallbackActive(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.FallbackActive))
}
