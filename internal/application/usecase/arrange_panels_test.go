package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/application/port/mocks"
	"github.com/bnema/floatdock/internal/domain/entity"
	"github.com/bnema/floatdock/internal/domain/layout"
	"github.com/bnema/floatdock/internal/infrastructure/virtualpanel"
)

var testWorkArea = entity.NewRect(0, 0, 1920, 1080)

type staticScreen struct {
	area entity.Rect
}

func (s staticScreen) WorkAreaAt(entity.Point) (entity.Rect, error) { return s.area, nil }
func (s staticScreen) PrimaryWorkArea() entity.Rect                 { return s.area }

type mutableSettings struct {
	settings entity.LayoutSettings
}

func (m *mutableSettings) LayoutSettings() entity.LayoutSettings { return m.settings }

// stepScheduler runs scheduled callbacks only when the test asks for it.
type stepScheduler struct {
	fns    []func() bool
	active []bool
}

func (s *stepScheduler) Every(_ time.Duration, fn func() bool) port.CancelFunc {
	i := len(s.fns)
	s.fns = append(s.fns, fn)
	s.active = append(s.active, true)
	return func() { s.active[i] = false }
}

func (s *stepScheduler) tick() {
	for i, fn := range s.fns {
		if s.active[i] && !fn() {
			s.active[i] = false
		}
	}
}

func (s *stepScheduler) drain(t *testing.T) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if !s.pending() {
			return
		}
		s.tick()
	}
	t.Fatal("scheduler did not drain")
}

func (s *stepScheduler) pending() bool {
	for _, a := range s.active {
		if a {
			return true
		}
	}
	return false
}

func nopLogger(context.Context) *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

type fixture struct {
	uc        *ArrangePanelsUseCase
	settings  *mutableSettings
	scheduler *stepScheduler
	desk      *virtualpanel.Desk
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	settings := &mutableSettings{settings: entity.DefaultLayoutSettings()}
	sched := &stepScheduler{}
	uc := NewArrangePanelsUseCase(ArrangePanelsOptions{
		Screen:    staticScreen{area: testWorkArea},
		Settings:  settings,
		Scheduler: sched,
		Logger:    nopLogger,
	})
	return &fixture{
		uc:        uc,
		settings:  settings,
		scheduler: sched,
		desk:      virtualpanel.NewDesk(context.Background(), uc),
	}
}

func (f *fixture) add(t *testing.T, id entity.PanelID, traits entity.PanelTraits, r entity.Rect) *virtualpanel.Panel {
	t.Helper()
	p := virtualpanel.New(id, traits, r)
	require.NoError(t, f.desk.Add(p))
	f.uc.Register(p)
	return p
}

func plainTraits() entity.PanelTraits {
	return entity.PanelTraits{Kind: entity.PanelTimer, Propagation: entity.PropagateFullLayout}
}

func TestApplyLiveLayout_SnapsToScreenEdge(t *testing.T) {
	f := newFixture(t)
	p := f.add(t, "timer", plainTraits(), entity.NewRect(20, 300, 220, 120))

	f.uc.ApplyLiveLayout(context.Background(), p)

	assert.Equal(t, entity.NewRect(8, 300, 220, 120), p.Rect())
	assert.Equal(t, PhaseIdle, f.uc.Phase())
}

func TestApplyLiveLayout_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.add(t, "a", plainTraits(), entity.NewRect(100, 100, 400, 500))
	b := f.add(t, "b", plainTraits(), entity.NewRect(150, 150, 400, 300))

	f.uc.ApplyLiveLayout(context.Background(), b)
	first := b.Rect()
	b.ResetWrites()

	f.uc.ApplyLiveLayout(context.Background(), b)

	assert.Equal(t, first, b.Rect())
	assert.Zero(t, b.Writes())
	assert.Zero(t, layout.CountOverlaps(b.Rect(), []entity.Rect{entity.NewRect(100, 100, 400, 500)}))
}

func TestApplyLiveLayout_UnrenderedPanelUsesNominalSize(t *testing.T) {
	f := newFixture(t)
	p := f.add(t, "timer", entity.DefaultTraits(entity.PanelTimer), entity.NewRect(20, 300, 0, 0))

	f.uc.ApplyLiveLayout(context.Background(), p)

	assert.Equal(t, entity.NewRect(8, 300, 220, 120), p.Rect())
}

func TestDrop_OverlapAnimatesBackToPreDragPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "a", plainTraits(), entity.NewRect(100, 100, 400, 500))
	b := f.add(t, "b", plainTraits(), entity.NewRect(600, 100, 300, 200))
	f.uc.RefreshAllLayouts(ctx)
	preDrag := b.Rect()
	require.Equal(t, entity.NewRect(600, 100, 300, 200), preDrag)

	b.BeginDrag()
	b.DragTo(150, 150)
	last, ok := f.uc.LastBounds("b")
	require.True(t, ok)
	assert.Equal(t, preDrag, last, "snapshot must keep the pre-drag position while dragging")

	b.EndDrag()
	require.True(t, f.uc.IsAnimating("b"))

	f.scheduler.tick()
	mid := b.Rect()
	assert.Greater(t, mid.Left, 150.0)
	assert.Less(t, mid.Left, 600.0)

	f.scheduler.drain(t)

	assert.Equal(t, preDrag, b.Rect())
	assert.False(t, f.uc.IsAnimating("b"))
	assert.Equal(t, PhaseIdle, f.uc.Phase())
}

func TestDrop_WithoutOverlapSnapsImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "a", plainTraits(), entity.NewRect(100, 100, 400, 500))
	b := f.add(t, "b", plainTraits(), entity.NewRect(600, 100, 300, 200))
	f.uc.RefreshAllLayouts(ctx)

	b.DragTo(515, 100)
	b.EndDrag()

	assert.False(t, f.uc.IsAnimating("b"))
	assert.Equal(t, 508.0, b.Rect().Left)
}

func TestDrop_NewDragCancelsRunningAnimation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "a", plainTraits(), entity.NewRect(100, 100, 400, 500))
	b := f.add(t, "b", plainTraits(), entity.NewRect(600, 100, 300, 200))
	f.uc.RefreshAllLayouts(ctx)

	b.DragTo(150, 150)
	b.EndDrag()
	f.scheduler.tick()
	require.True(t, f.uc.IsAnimating("b"))

	b.DragTo(1000, 600)

	assert.False(t, f.uc.IsAnimating("b"))
	f.scheduler.drain(t)
	assert.Equal(t, 1000.0, b.Rect().Left)
}

func TestDrop_DirtySnapshotResolvesFreshPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.add(t, "a", plainTraits(), entity.NewRect(100, 100, 400, 500))
	b := f.add(t, "b", plainTraits(), entity.NewRect(600, 100, 300, 200))
	f.uc.RefreshAllLayouts(ctx)

	b.BeginDrag()
	b.DragTo(150, 150)
	// Another panel takes the spot b was dragged away from.
	c := f.add(t, "c", plainTraits(), entity.NewRect(600, 100, 300, 200))
	last, ok := f.uc.LastBounds("b")
	require.True(t, ok)
	require.Equal(t, entity.NewRect(600, 100, 300, 200), last)

	b.EndDrag()
	require.True(t, f.uc.IsAnimating("b"))
	f.scheduler.drain(t)

	assert.Equal(t, entity.NewRect(150, 608, 300, 200), b.Rect())
	assert.Zero(t, layout.CountOverlaps(b.Rect(), []entity.Rect{a.Rect(), c.Rect()}))
	assert.Equal(t, entity.NewRect(600, 100, 300, 200), c.Rect(), "the panel in the old spot stays put")
	last, ok = f.uc.LastBounds("b")
	require.True(t, ok)
	assert.Equal(t, b.Rect(), last)
	assert.Equal(t, PhaseIdle, f.uc.Phase())
}

func TestResize_ShrinkingAnchorPullsFollowerUp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anchor := f.add(t, "anchor", plainTraits(), entity.NewRect(100, 100, 300, 200))
	follower := f.add(t, "follower", plainTraits(), entity.NewRect(100, 308, 300, 100))
	f.uc.RefreshAllLayouts(ctx)
	require.Equal(t, []entity.PanelID{"follower"}, f.uc.FollowersOf("anchor"))

	anchor.UserResize(300, 150)

	assert.Equal(t, entity.NewRect(100, 100, 300, 150), anchor.Rect())
	assert.Equal(t, entity.NewRect(100, 258, 300, 100), follower.Rect())
	anchorID, ok := f.uc.AnchorOf("follower")
	require.True(t, ok)
	assert.Equal(t, entity.PanelID("anchor"), anchorID)
}

func TestResize_EmptyBandFallsBackToNearestBelow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anchor := f.add(t, "anchor", plainTraits(), entity.NewRect(100, 100, 300, 200))
	// 45px under the anchor: too far to be captured, close enough to be the
	// nearest panel below.
	below := f.add(t, "below", plainTraits(), entity.NewRect(100, 345, 300, 100))
	f.uc.RefreshAllLayouts(ctx)
	require.Equal(t, entity.NewRect(100, 345, 300, 100), below.Rect())
	_, attached := f.uc.AnchorOf("below")
	require.False(t, attached)

	// Growing by 10px sweeps [284, 326], which misses the panel at 345.
	anchor.UserResize(300, 210)

	assert.Equal(t, entity.NewRect(100, 318, 300, 100), below.Rect())
	anchorID, ok := f.uc.AnchorOf("below")
	require.True(t, ok)
	assert.Equal(t, entity.PanelID("anchor"), anchorID)
}

func TestResize_PropagatesDownLongChainOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	traits := entity.PanelTraits{Kind: entity.PanelTasks, Propagation: entity.PropagateVerticalOnly}

	const n = 50
	panels := make([]*virtualpanel.Panel, n)
	for i := 0; i < n; i++ {
		id := entity.PanelID(fmt.Sprintf("p%02d", i))
		panels[i] = f.add(t, id, traits, entity.NewRect(8, 8+18*float64(i), 200, 10))
	}
	f.uc.RefreshAllLayouts(ctx)
	for i := 1; i < n; i++ {
		anchor, ok := f.uc.AnchorOf(panels[i].ID())
		require.True(t, ok, "panel %d should be attached", i)
		require.Equal(t, panels[i-1].ID(), anchor)
	}
	for _, p := range panels {
		p.ResetWrites()
	}

	panels[0].UserResize(200, 30)

	for i := 1; i < n; i++ {
		assert.Equal(t, 1, panels[i].Writes(), "panel %d", i)
		assert.Equal(t, 28+18*float64(i), panels[i].Rect().Top, "panel %d", i)
	}
	assert.Equal(t, n-1, len(f.uc.Attachments()))
}

func TestResize_FullLayoutFollowerTracksAnchor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anchor := f.add(t, "anchor", plainTraits(), entity.NewRect(100, 100, 300, 200))
	follower := f.add(t, "follower", plainTraits(), entity.NewRect(100, 308, 300, 100))
	f.uc.RefreshAllLayouts(ctx)
	require.Equal(t, []entity.PanelID{"follower"}, f.uc.FollowersOf("anchor"))

	anchor.UserResize(300, 250)

	assert.Equal(t, entity.NewRect(100, 358, 300, 100), follower.Rect())
}

func TestResize_HeightConstrainedPanelDoesNotShiftSideways(t *testing.T) {
	f := newFixture(t)
	search := f.add(t, "search", entity.DefaultTraits(entity.PanelSearch), entity.NewRect(20, 100, 640, 72))

	search.UserResize(640, 200)

	assert.Equal(t, 20.0, search.Rect().Left)
}

func TestHeightConstraint_GrowsByShrinkDeltaOfPanelBelow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	search := f.add(t, "search", entity.DefaultTraits(entity.PanelSearch), entity.NewRect(100, 100, 640, 200))
	below := f.add(t, "below", plainTraits(), entity.NewRect(100, 400, 640, 300))
	f.uc.RefreshAllLayouts(ctx)
	before := search.MaxHeight()
	require.Equal(t, 664.0, before)

	below.UserResize(640, 250)

	assert.Equal(t, before+50, search.MaxHeight())
}

type phaseSpy struct {
	*virtualpanel.Panel
	uc     *ArrangePanelsUseCase
	phases []LayoutPhase
}

func (s *phaseSpy) SetBounds(r entity.Rect) error {
	s.phases = append(s.phases, s.uc.Phase())
	if err := s.Panel.SetBounds(r); err != nil {
		return err
	}
	s.uc.OnPanelMoved(context.Background(), s)
	return nil
}

func TestWrite_EchoedMoveIsNotReprocessed(t *testing.T) {
	f := newFixture(t)
	spy := &phaseSpy{
		Panel: virtualpanel.New("spy", plainTraits(), entity.NewRect(20, 300, 220, 120)),
		uc:    f.uc,
	}

	f.uc.ApplyLiveLayout(context.Background(), spy)

	assert.Equal(t, []LayoutPhase{PhaseApplying}, spy.phases)
	assert.Equal(t, 1, spy.Writes())
	assert.Equal(t, PhaseIdle, f.uc.Phase())
	last, ok := f.uc.LastBounds("spy")
	require.True(t, ok)
	assert.Equal(t, entity.NewRect(8, 300, 220, 120), last)
}

type panickyPanel struct {
	*virtualpanel.Panel
}

func (p *panickyPanel) SetBounds(entity.Rect) error { panic("window destroyed") }

func TestPanicInsideWriteLeavesCoordinatorIdle(t *testing.T) {
	f := newFixture(t)
	p := &panickyPanel{Panel: virtualpanel.New("bad", plainTraits(), entity.NewRect(20, 300, 220, 120))}

	assert.NotPanics(t, func() { f.uc.ApplyLiveLayout(context.Background(), p) })
	assert.Equal(t, PhaseIdle, f.uc.Phase())

	ok := f.add(t, "ok", plainTraits(), entity.NewRect(20, 600, 220, 120))
	f.uc.ApplyLiveLayout(context.Background(), ok)
	assert.Equal(t, 8.0, ok.Rect().Left)
}

func TestDisabledMode_OnlyMaintainsSnapshot(t *testing.T) {
	f := newFixture(t)
	f.settings.settings.FreePlacement = false
	p := f.add(t, "timer", plainTraits(), entity.NewRect(20, 300, 220, 120))

	p.UserMove(30, 310)

	assert.Equal(t, entity.NewRect(30, 310, 220, 120), p.Rect())
	last, ok := f.uc.LastBounds("timer")
	require.True(t, ok)
	assert.Equal(t, p.Rect(), last)
}

func TestDisablingFreePlacementClearsState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "anchor", plainTraits(), entity.NewRect(100, 100, 300, 200))
	f.add(t, "follower", plainTraits(), entity.NewRect(100, 308, 300, 100))
	f.uc.RefreshAllLayouts(ctx)
	require.Equal(t, 1, len(f.uc.Attachments()))

	f.settings.settings.FreePlacement = false
	f.uc.RefreshAttachmentGraph(ctx)

	assert.Empty(t, f.uc.Attachments())
	_, ok := f.uc.LastBounds("anchor")
	assert.False(t, ok)
}

func TestHideAndClosePurgeState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	anchor := f.add(t, "anchor", plainTraits(), entity.NewRect(100, 100, 300, 200))
	follower := f.add(t, "follower", plainTraits(), entity.NewRect(100, 308, 300, 100))
	f.uc.RefreshAllLayouts(ctx)

	follower.Hide()

	_, ok := f.uc.AnchorOf("follower")
	assert.False(t, ok)
	_, ok = f.uc.LastBounds("follower")
	assert.False(t, ok)

	follower.Show()
	anchorID, ok := f.uc.AnchorOf("follower")
	require.True(t, ok)
	assert.Equal(t, entity.PanelID("anchor"), anchorID)

	anchor.Close()

	assert.Empty(t, f.uc.FollowersOf("anchor"))
	_, ok = f.uc.LastBounds("anchor")
	assert.False(t, ok)
}

func TestUnloadPurgesState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.add(t, "anchor", plainTraits(), entity.NewRect(100, 100, 300, 200))
	follower := f.add(t, "follower", plainTraits(), entity.NewRect(100, 308, 300, 100))
	f.uc.RefreshAllLayouts(ctx)
	require.Equal(t, []entity.PanelID{"follower"}, f.uc.FollowersOf("anchor"))

	follower.SetLoaded(false)

	assert.Empty(t, f.uc.FollowersOf("anchor"))
	_, ok := f.uc.LastBounds("follower")
	assert.False(t, ok)
	_, ok = f.uc.LastBounds("anchor")
	assert.True(t, ok)

	follower.SetLoaded(true)

	anchorID, ok := f.uc.AnchorOf("follower")
	require.True(t, ok)
	assert.Equal(t, entity.PanelID("anchor"), anchorID)
	_, ok = f.uc.LastBounds("follower")
	assert.True(t, ok)
}

func TestPanelLogsCarryPanelID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := logger.WithContext(context.Background())

	uc := NewArrangePanelsUseCase(ArrangePanelsOptions{
		Screen:   staticScreen{area: testWorkArea},
		Settings: port.StaticLayoutSettings(entity.DefaultLayoutSettings()),
	})
	p := virtualpanel.New("timer", plainTraits(), entity.NewRect(20, 300, 220, 120))

	uc.ApplyLiveLayout(ctx, p)

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "live layout applied" {
			found = true
			assert.Equal(t, "timer", entry["panel_id"])
		}
	}
	assert.True(t, found, "expected a live layout log line, got %q", buf.String())
}

func TestScreenLookupFailureFallsBackToPrimary(t *testing.T) {
	screen := mocks.NewMockScreenQuery(t)
	screen.EXPECT().WorkAreaAt(mock.Anything).Return(entity.Rect{}, errors.New("no monitor"))
	screen.EXPECT().PrimaryWorkArea().Return(entity.NewRect(0, 0, 1280, 720))

	uc := NewArrangePanelsUseCase(ArrangePanelsOptions{
		Screen:   screen,
		Settings: port.StaticLayoutSettings(entity.DefaultLayoutSettings()),
		Logger:   nopLogger,
	})
	p := virtualpanel.New("timer", plainTraits(), entity.NewRect(1200, 300, 220, 120))

	uc.ApplyLiveLayout(context.Background(), p)

	assert.Equal(t, 1052.0, p.Rect().Left)
}

func TestNilPanelIsIgnored(t *testing.T) {
	f := newFixture(t)

	assert.NotPanics(t, func() {
		f.uc.OnPanelMoved(context.Background(), nil)
		f.uc.OnPanelResized(context.Background(), nil)
		f.uc.OnPanelVisibilityChanged(context.Background(), nil)
		f.uc.OnPanelClosed(context.Background(), nil)
		f.uc.ApplyLiveLayout(context.Background(), nil)
	})
}
