package preview

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/infrastructure/config"
	"github.com/bnema/floatdock/internal/ui/mainloop"
)

type fixedSettings struct{}

func (fixedSettings) LayoutSettings() entity.LayoutSettings { return entity.DefaultLayoutSettings() }

type memoryBounds struct {
	mu    sync.Mutex
	saved map[entity.PanelID]port.SavedBounds
}

func newMemoryBounds(bounds ...port.SavedBounds) *memoryBounds {
	m := &memoryBounds{saved: map[entity.PanelID]port.SavedBounds{}}
	for _, b := range bounds {
		m.saved[b.PanelID] = b
	}
	return m
}

func (m *memoryBounds) Save(_ context.Context, b port.SavedBounds) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[b.PanelID] = b
	return nil
}

func (m *memoryBounds) Get(_ context.Context, id entity.PanelID) (*port.SavedBounds, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.saved[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memoryBounds) List(context.Context) ([]port.SavedBounds, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]port.SavedBounds, 0, len(m.saved))
	for _, b := range m.saved {
		out = append(out, b)
	}
	return out, nil
}

func (m *memoryBounds) Delete(_ context.Context, id entity.PanelID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved, id)
	return nil
}

func (m *memoryBounds) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = map[entity.PanelID]port.SavedBounds{}
	return nil
}

// recorder collects published messages.
type recorder struct {
	frames []Frame
	status []string
}

func (r *recorder) publish(msg any) {
	switch m := msg.(type) {
	case FrameMsg:
		r.frames = append(r.frames, Frame(m))
	case StatusMsg:
		r.status = append(r.status, string(m))
	}
}

func (r *recorder) last(t *testing.T) Frame {
	t.Helper()
	require.NotEmpty(t, r.frames)
	return r.frames[len(r.frames)-1]
}

func (r *recorder) rect(t *testing.T, id entity.PanelID) entity.Rect {
	t.Helper()
	p, ok := r.last(t).Panel(id)
	require.True(t, ok, "panel %s not in frame", id)
	return p.Rect
}

func syncPost(fn func()) bool {
	fn()
	return true
}

func newTestHost(t *testing.T, panels map[string]config.PanelConfig, bounds port.BoundsStore) (*Host, *recorder, *mainloop.ManualScheduler) {
	t.Helper()
	rec := &recorder{}
	sched := mainloop.NewManualScheduler()
	opts := HostOptions{
		Post:      syncPost,
		Scheduler: sched,
		Settings:  fixedSettings{},
		Panels:    panels,
		Bounds:    bounds,
		Publish:   rec.publish,
	}
	h, err := NewHost(context.Background(), opts)
	require.NoError(t, err)
	h.Start()
	return h, rec, sched
}

func timerAt(x, y float64) config.PanelConfig {
	return config.PanelConfig{Kind: "timer", X: x, Y: y, Visible: true}
}

func TestNewHost_RequiresCollaborators(t *testing.T) {
	_, err := NewHost(context.Background(), HostOptions{})
	assert.Error(t, err)
}

func TestHost_StartPublishesFrame(t *testing.T) {
	_, rec, _ := newTestHost(t, map[string]config.PanelConfig{"clock": timerAt(300, 300)}, nil)

	f := rec.last(t)
	assert.Equal(t, entity.NewRect(0, 0, 1920, 1080), f.Area)
	assert.Equal(t, entity.NewRect(300, 300, 220, 120), rec.rect(t, "clock"))
	assert.True(t, f.Settings.FreePlacement)
}

func TestHost_DefaultPanelsWhenNoneConfigured(t *testing.T) {
	_, rec, _ := newTestHost(t, nil, nil)

	f := rec.last(t)
	assert.Len(t, f.Panels, len(config.DefaultPanels()))
	// Panels are registered in id order.
	assert.Equal(t, entity.PanelID("documents"), f.Panels[0].ID)
}

func TestHost_MoveSnapsAndFreePlacementToggle(t *testing.T) {
	h, rec, _ := newTestHost(t, map[string]config.PanelConfig{"clock": timerAt(300, 300)}, nil)

	h.Move("clock", -280, 0)
	assert.Equal(t, entity.NewRect(8, 300, 220, 120), rec.rect(t, "clock"))

	h.ToggleFreePlacement()
	assert.Equal(t, []string{"free placement off"}, rec.status)
	assert.False(t, rec.last(t).Settings.FreePlacement)

	h.Move("clock", 12, 0)
	assert.Equal(t, entity.NewRect(20, 300, 220, 120), rec.rect(t, "clock"))
}

func TestHost_DragCancelPublishesAnimationFrames(t *testing.T) {
	h, rec, sched := newTestHost(t, map[string]config.PanelConfig{
		"clock":    timerAt(100, 100),
		"pomodoro": timerAt(700, 100),
	}, nil)

	h.Grab("pomodoro")
	h.Move("pomodoro", -300, 10)
	h.Move("pomodoro", -250, 10)
	p, ok := rec.last(t).Panel("pomodoro")
	require.True(t, ok)
	assert.True(t, p.Dragging)

	h.Drop("pomodoro")
	before := len(rec.frames)
	ticks := sched.Drain(1000)

	require.Positive(t, ticks)
	assert.Equal(t, before+ticks, len(rec.frames))
	assert.Equal(t, entity.NewRect(700, 100, 220, 120), rec.rect(t, "pomodoro"))
}

func TestHost_ToggleVisible(t *testing.T) {
	h, rec, _ := newTestHost(t, map[string]config.PanelConfig{"clock": timerAt(300, 300)}, nil)

	h.ToggleVisible("clock")
	p, _ := rec.last(t).Panel("clock")
	assert.False(t, p.Visible)

	h.ToggleVisible("clock")
	p, _ = rec.last(t).Panel("clock")
	assert.True(t, p.Visible)
}

func TestHost_UnknownPanelReportsStatus(t *testing.T) {
	h, rec, _ := newTestHost(t, map[string]config.PanelConfig{"clock": timerAt(300, 300)}, nil)

	h.Move("ghost", 10, 0)

	require.Len(t, rec.status, 1)
	assert.Contains(t, rec.status[0], "ghost")
}

func TestHost_SavedBoundsOverrideConfig(t *testing.T) {
	store := newMemoryBounds(
		port.SavedBounds{PanelID: "clock", Kind: entity.PanelTimer, Rect: entity.NewRect(500, 500, 220, 120), Visible: true},
		// Kind mismatch: ignored.
		port.SavedBounds{PanelID: "todo", Kind: entity.PanelTimer, Rect: entity.NewRect(900, 600, 220, 120), Visible: true},
	)
	_, rec, _ := newTestHost(t, map[string]config.PanelConfig{
		"clock": timerAt(300, 300),
		"todo":  {Kind: "tasks", X: 1200, Y: 300, Visible: true},
	}, store)

	assert.Equal(t, entity.NewRect(500, 500, 220, 120), rec.rect(t, "clock"))
	assert.Equal(t, entity.NewRect(1200, 300, 320, 360), rec.rect(t, "todo"))
}

func TestHost_SaveStoresOpenPanels(t *testing.T) {
	store := newMemoryBounds()
	h, rec, _ := newTestHost(t, map[string]config.PanelConfig{
		"clock": timerAt(300, 300),
		"todo":  {Kind: "tasks", X: 1200, Y: 300},
	}, store)

	h.Save()

	assert.Equal(t, []string{"saved 2 panel position(s)"}, rec.status)
	saved, err := store.Get(context.Background(), "todo")
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, entity.PanelTasks, saved.Kind)
	assert.False(t, saved.Visible)
	assert.Equal(t, entity.NewRect(1200, 300, 320, 360), saved.Rect)
}

func TestHost_SaveWithoutStore(t *testing.T) {
	h, rec, _ := newTestHost(t, map[string]config.PanelConfig{"clock": timerAt(300, 300)}, nil)

	h.Save()

	assert.Equal(t, []string{"no bounds store configured"}, rec.status)
}

func TestHost_SkipRestoreIgnoresSavedBounds(t *testing.T) {
	store := newMemoryBounds(
		port.SavedBounds{PanelID: "clock", Kind: entity.PanelTimer, Rect: entity.NewRect(500, 500, 220, 120), Visible: true},
	)
	rec := &recorder{}
	h, err := NewHost(context.Background(), HostOptions{
		Post:        syncPost,
		Scheduler:   mainloop.NewManualScheduler(),
		Settings:    fixedSettings{},
		Panels:      map[string]config.PanelConfig{"clock": timerAt(300, 300)},
		Bounds:      store,
		SkipRestore: true,
		Publish:     rec.publish,
	})
	require.NoError(t, err)
	h.Start()

	assert.Equal(t, entity.NewRect(300, 300, 220, 120), rec.rect(t, "clock"))
}
