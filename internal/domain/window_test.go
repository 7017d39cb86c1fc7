package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowDuration(t *testing.T) {
	assert.Equal(t, time.Hour, WindowHour.Duration())
	assert.Equal(t, 24*time.Hour, WindowDay.Duration())
	assert.Equal(t, 7*24*time.Hour, WindowWeek.Duration())
	assert.Zero(t, WindowAll.Duration())
}

func TestParseWindow(t *testing.T) {
	for _, w := range Windows() {
		parsed, err := ParseWindow(string(w))
		require.NoError(t, err)
		assert.Equal(t, w, parsed)
	}

	_, err := ParseWindow("fortnight")
	assert.Error(t, err)

	_, err = ParseWindow("")
	assert.Error(t, err)
}

func TestWindowLabels(t *testing.T) {
	assert.Equal(t, "Last Hour", WindowHour.Label())
	assert.Equal(t, "All", WindowAll.Label())
}

func TestSampleHasGPU(t *testing.T) {
	s := Sample{}
	assert.False(t, s.HasGPU())

	v := 12.5
	s.GPUPercent = &v
	assert.True(t, s.HasGPU())
}
