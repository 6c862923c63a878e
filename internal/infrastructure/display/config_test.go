package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/infrastructure/config"
)

func TestFromConfig_EmptyUsesDefaultMonitor(t *testing.T) {
	s, err := FromConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, entity.NewRect(0, 0, 1920, 1080), s.PrimaryWorkArea())
}

func TestFromConfig_ReservedEdgesAndPrimary(t *testing.T) {
	s, err := FromConfig([]config.MonitorConfig{
		{Name: "left", Width: 1920, Height: 1080},
		{Name: "right", X: 1920, Width: 2560, Height: 1440, ReservedTop: 32, Primary: true},
	})
	require.NoError(t, err)

	assert.Equal(t, "right", s.Primary().Name)
	assert.Equal(t, entity.NewRect(1920, 32, 2560, 1408), s.PrimaryWorkArea())
	assert.Equal(t, entity.NewRect(1920, 0, 2560, 1440), s.Primary().Bounds)

	wa, err := s.WorkAreaAt(entity.Point{X: 100, Y: 100})
	require.NoError(t, err)
	assert.Equal(t, entity.NewRect(0, 0, 1920, 1080), wa)
}

func TestFromConfig_RejectsEmptyWorkArea(t *testing.T) {
	_, err := FromConfig([]config.MonitorConfig{{Name: "bar", Width: 100, Height: 30, ReservedTop: 30}})

	assert.ErrorIs(t, err, ErrInvalidMonitor)
}
