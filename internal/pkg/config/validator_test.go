package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{name: "daily digest", schedule: "30 5 * * *"},
		{name: "weekdays only", schedule: "30 9 * * 1-5"},
		{name: "every six hours", schedule: "0 */6 * * *"},
		{name: "empty", schedule: "", wantErr: true},
		{name: "too few fields", schedule: "30 5 * *", wantErr: true},
		{name: "seconds field not allowed", schedule: "0 30 5 * * *", wantErr: true},
		{name: "minute out of range", schedule: "61 5 * * *", wantErr: true},
		{name: "prose", schedule: "every morning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "digest timezone", timezone: "Asia/Shanghai"},
		{name: "utc", timezone: "UTC"},
		{name: "europe", timezone: "Europe/London"},
		{name: "empty", timezone: "", wantErr: true},
		{name: "offset instead of name", timezone: "+08:00", wantErr: true},
		{name: "unknown zone", timezone: "Asia/Atlantis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimezone(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDuration(t *testing.T) {
	min, max := 1*time.Minute, 4*time.Hour

	tests := []struct {
		name     string
		duration time.Duration
		wantErr  bool
	}{
		{name: "default run timeout", duration: 30 * time.Minute},
		{name: "at minimum", duration: 1 * time.Minute},
		{name: "at maximum", duration: 4 * time.Hour},
		{name: "below minimum", duration: 30 * time.Second, wantErr: true},
		{name: "above maximum", duration: 5 * time.Hour, wantErr: true},
		{name: "zero", duration: 0, wantErr: true},
		{name: "negative", duration: -time.Minute, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDuration(tt.duration, min, max)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDuration_InvertedRange(t *testing.T) {
	err := ValidateDuration(time.Minute, time.Hour, time.Second)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid range")
}

func TestValidateIntRange(t *testing.T) {
	tests := []struct {
		name     string
		value    int
		min, max int
		wantErr  bool
	}{
		{name: "health port in range", value: 9091, min: 1024, max: 65535},
		{name: "port at lower bound", value: 1024, min: 1024, max: 65535},
		{name: "port at upper bound", value: 65535, min: 1024, max: 65535},
		{name: "privileged port", value: 80, min: 1024, max: 65535, wantErr: true},
		{name: "port too large", value: 70000, min: 1024, max: 65535, wantErr: true},
		{name: "inverted range", value: 5, min: 10, max: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIntRange(tt.value, tt.min, tt.max)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(30*time.Minute))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}
