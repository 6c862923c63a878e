package virtualpanel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/floatdock/internal/application/port"
	"github.com/bnema/floatdock/internal/domain/entity"
)

type recorder struct {
	events []string
}

func (r *recorder) OnPanelMoved(_ context.Context, p port.Panel) {
	r.events = append(r.events, "moved:"+string(p.ID()))
}

func (r *recorder) OnPanelResized(_ context.Context, p port.Panel) {
	r.events = append(r.events, "resized:"+string(p.ID()))
}

func (r *recorder) OnPanelVisibilityChanged(_ context.Context, p port.Panel) {
	r.events = append(r.events, "visibility:"+string(p.ID()))
}

func (r *recorder) OnPanelClosed(_ context.Context, p port.Panel) {
	r.events = append(r.events, "closed:"+string(p.ID()))
}

type dragRecorder struct {
	recorder
}

func (r *dragRecorder) OnDragReleased(_ context.Context, p port.Panel) {
	r.events = append(r.events, "released:"+string(p.ID()))
}

func TestSetBounds_CountsOnlyChanges(t *testing.T) {
	rec := &recorder{}
	p := New("a", entity.DefaultTraits(entity.PanelTimer), entity.NewRect(10, 10, 100, 100))
	p.Bind(context.Background(), rec)

	require.NoError(t, p.SetBounds(entity.NewRect(10, 10, 100, 100)))
	require.NoError(t, p.SetBounds(entity.NewRect(20, 10, 100, 100)))
	require.NoError(t, p.SetBounds(entity.NewRect(20, 10, 100, 150)))

	assert.Equal(t, 2, p.Writes())
	assert.Equal(t, []string{"moved:a", "resized:a"}, rec.events)
}

func TestBounds_UnrenderedPanel(t *testing.T) {
	p := New("a", entity.DefaultTraits(entity.PanelTimer), entity.NewRect(10, 20, 0, 0))

	r, err := p.Bounds()

	assert.ErrorIs(t, err, entity.ErrGeometryUnavailable)
	assert.Equal(t, 10.0, r.Left)
	assert.False(t, r.HasArea())

	p.Render(entity.NewRect(10, 20, 50, 50))
	_, err = p.Bounds()
	assert.NoError(t, err)
}

func TestEndDrag_PrefersDragObserver(t *testing.T) {
	rec := &dragRecorder{}
	p := New("a", entity.DefaultTraits(entity.PanelTimer), entity.NewRect(10, 10, 100, 100))
	p.Bind(context.Background(), rec)

	p.DragTo(40, 40)
	assert.True(t, p.IsDragging())
	p.EndDrag()

	assert.False(t, p.IsDragging())
	assert.Equal(t, []string{"moved:a", "released:a"}, rec.events)
}

func TestEndDrag_FallsBackToMoved(t *testing.T) {
	rec := &recorder{}
	p := New("a", entity.DefaultTraits(entity.PanelTimer), entity.NewRect(10, 10, 100, 100))
	p.Bind(context.Background(), rec)

	p.BeginDrag()
	p.EndDrag()

	assert.Equal(t, []string{"moved:a"}, rec.events)
}

func TestUserResize_HonorsMaxHeight(t *testing.T) {
	p := NewOfKind("search", entity.PanelSearch, 0, 0)
	p.SetMaxHeight(300)

	p.UserResize(640, 500)

	assert.Equal(t, 300.0, p.Rect().Height)
}

func TestSetMaxHeight_ShrinksTallPanel(t *testing.T) {
	rec := &recorder{}
	p := New("docs", entity.DefaultTraits(entity.PanelDocuments), entity.NewRect(0, 0, 420, 480))
	p.Bind(context.Background(), rec)

	p.SetMaxHeight(400)

	assert.Equal(t, 400.0, p.Rect().Height)
	assert.Equal(t, []string{"resized:docs"}, rec.events)
}

func TestVisibilityAndClose(t *testing.T) {
	rec := &recorder{}
	p := NewOfKind("t", entity.PanelTimer, 0, 0)
	p.Bind(context.Background(), rec)

	p.Hide()
	p.Hide()
	assert.False(t, p.IsVisible())
	p.Show()
	p.Close()
	p.Close()

	assert.False(t, p.IsVisible())
	assert.ErrorIs(t, p.SetBounds(entity.NewRect(1, 1, 1, 1)), ErrClosed)
	assert.Equal(t, []string{"visibility:t", "visibility:t", "closed:t"}, rec.events)
}

func TestDesk_AddAndGet(t *testing.T) {
	d := NewDesk(context.Background(), &recorder{})
	a := NewOfKind("a", entity.PanelTimer, 0, 0)

	require.NoError(t, d.Add(a))
	assert.ErrorIs(t, d.Add(a), ErrDuplicatePanel)

	got, err := d.Get("a")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = d.Get("missing")
	assert.ErrorIs(t, err, ErrUnknownPanel)

	a.Close()
	assert.Len(t, d.Panels(), 1)
	assert.Empty(t, d.Open())
}
