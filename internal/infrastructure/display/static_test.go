package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/floatdock/internal/domain/entity"
)

func dualHead() []Monitor {
	return []Monitor{
		{Name: "DP-1", WorkArea: entity.NewRect(0, 32, 1920, 1048)},
		{Name: "HDMI-A-1", Bounds: entity.NewRect(1920, 0, 2560, 1440), WorkArea: entity.NewRect(1920, 0, 2560, 1400), Primary: true},
	}
}

func TestNewScreen_Validation(t *testing.T) {
	_, err := NewScreen(nil)
	assert.ErrorIs(t, err, ErrNoMonitors)

	_, err = NewScreen([]Monitor{{Name: "broken"}})
	assert.ErrorIs(t, err, ErrInvalidMonitor)
}

func TestScreen_WorkAreaAt(t *testing.T) {
	s, err := NewScreen(dualHead())
	require.NoError(t, err)

	tests := []struct {
		name  string
		point entity.Point
		want  entity.Rect
	}{
		{name: "left monitor", point: entity.Point{X: 100, Y: 500}, want: entity.NewRect(0, 32, 1920, 1048)},
		{name: "right monitor", point: entity.Point{X: 3000, Y: 1420}, want: entity.NewRect(1920, 0, 2560, 1400)},
		{name: "shared edge picks first", point: entity.Point{X: 1920, Y: 500}, want: entity.NewRect(0, 32, 1920, 1048)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.WorkAreaAt(tt.point)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScreen_OffscreenPoint(t *testing.T) {
	s, err := NewScreen(dualHead())
	require.NoError(t, err)

	_, err = s.WorkAreaAt(entity.Point{X: -50, Y: 10})

	assert.ErrorIs(t, err, ErrPointOffscreen)
	assert.Equal(t, "HDMI-A-1", s.Primary().Name)
	assert.Equal(t, entity.NewRect(1920, 0, 2560, 1400), s.PrimaryWorkArea())
}

func TestScreen_PrimaryDefaultsToFirst(t *testing.T) {
	monitors := dualHead()
	monitors[1].Primary = false

	s, err := NewScreen(monitors)
	require.NoError(t, err)

	assert.Equal(t, "DP-1", s.Primary().Name)
	assert.Len(t, s.Monitors(), 2)
}

func TestSingleMonitor(t *testing.T) {
	s := SingleMonitor(entity.NewRect(0, 0, 1280, 720))

	got, err := s.WorkAreaAt(entity.Point{X: 10, Y: 10})

	require.NoError(t, err)
	assert.Equal(t, entity.NewRect(0, 0, 1280, 720), got)
	assert.Equal(t, got, s.PrimaryWorkArea())
}
