package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/floatdock/internal/domain/entity"
)

func TestResolveOverlaps_DroppedOnTopOfAnotherPanel(t *testing.T) {
	a := entity.NewRect(100, 100, 400, 500)
	dropped := entity.NewRect(150, 150, 400, 300)

	got := ResolveOverlaps(dropped, []entity.Rect{a}, testWorkArea, 8)

	assert.False(t, RectsOverlap(got, a))
	assert.Equal(t, 0, CountOverlaps(got, []entity.Rect{a}))

	cardinal := []entity.Rect{
		ClampToWorkArea(dropped.MoveTo(a.Left-8-dropped.Width, dropped.Top), testWorkArea, 8),
		ClampToWorkArea(dropped.MoveTo(a.Right()+8, dropped.Top), testWorkArea, 8),
		ClampToWorkArea(dropped.MoveTo(dropped.Left, a.Top-8-dropped.Height), testWorkArea, 8),
		ClampToWorkArea(dropped.MoveTo(dropped.Left, a.Bottom()+8), testWorkArea, 8),
	}
	assert.Contains(t, cardinal, got)
	// right of A is the closest clean spot
	assert.Equal(t, entity.NewRect(508, 150, 400, 300), got)
}

func TestResolveOverlaps_NoOverlapReturnsClampedInput(t *testing.T) {
	r := entity.NewRect(-20, 40, 100, 100)
	got := ResolveOverlaps(r, []entity.Rect{entity.NewRect(500, 500, 100, 100)}, testWorkArea, 8)

	assert.Equal(t, entity.NewRect(8, 40, 100, 100), got)
}

func TestResolveOverlaps_WalksAroundSeveralPanels(t *testing.T) {
	others := []entity.Rect{
		entity.NewRect(100, 100, 300, 300),
		entity.NewRect(408, 100, 300, 300),
	}
	dropped := entity.NewRect(150, 120, 300, 200)

	got := ResolveOverlaps(dropped, others, testWorkArea, 8)

	assert.Equal(t, 0, CountOverlaps(got, others))
}

func TestResolveOverlaps_UnresolvableStaysOnScreen(t *testing.T) {
	wa := entity.NewRect(0, 0, 400, 400)
	others := []entity.Rect{entity.NewRect(0, 0, 400, 400)}

	got := ResolveOverlaps(entity.NewRect(50, 50, 200, 200), others, wa, 8)

	assert.Equal(t, got, ClampToWorkArea(got, wa, 8))
	assert.Equal(t, 1, CountOverlaps(got, others))
}

func TestResolveOverlaps_AlwaysInsideClampedBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randRect := func() entity.Rect {
		return entity.NewRect(
			rng.Float64()*2200-140,
			rng.Float64()*1300-110,
			40+rng.Float64()*600,
			40+rng.Float64()*500,
		)
	}

	for i := 0; i < 500; i++ {
		others := make([]entity.Rect, 1+rng.Intn(6))
		for j := range others {
			others[j] = ClampToWorkArea(randRect(), testWorkArea, 8)
		}

		got := ResolveOverlaps(randRect(), others, testWorkArea, 8)

		require.Equal(t, got, ClampToWorkArea(got, testWorkArea, 8), "iteration %d", i)
	}
}

func TestFirstOverlap(t *testing.T) {
	r := entity.NewRect(0, 0, 100, 100)
	others := []entity.Rect{
		entity.NewRect(200, 200, 10, 10),
		entity.NewRect(50, 50, 10, 10),
		entity.NewRect(60, 60, 10, 10),
	}

	assert.Equal(t, 1, FirstOverlap(r, others))
	assert.Equal(t, -1, FirstOverlap(r, others[:1]))
	assert.Equal(t, 2, CountOverlaps(r, others))
}
