package targeting

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1siamBot/survivors-engine/engine/core"
	"github.com/1siamBot/survivors-engine/engine/spatial"
)

func newSelector(t testing.TB, w *core.World) *Selector {
	t.Helper()
	g, err := spatial.NewGrid(64)
	require.NoError(t, err)
	bp := spatial.NewBroadPhase(g, 32)
	spatial.Rebuild(w, bp)
	return NewSelector(w, bp, 128, 400)
}

func spawnEnemy(w *core.World, x, y, hp float64) core.EntityID {
	id := w.Spawn(core.CatEnemy)
	w.Attach(id, &core.Position{X: x, Y: y})
	w.Attach(id, &core.Collider{Radius: 10})
	w.Attach(id, &core.Health{Current: hp, Max: hp})
	return id
}

func bruteNearest(w *core.World, pos core.Vec2, k int) []float64 {
	var ds []float64
	for _, id := range w.QueryCategory(core.CatEnemy) {
		b, _ := w.Body(id)
		ds = append(ds, pos.DistSq(b.Pos))
	}
	slices.Sort(ds)
	return ds[:min(k, len(ds))]
}

func TestNearestKMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 4))
	for _, n := range []int{1, 5, 40, 150, 400} {
		w := core.NewWorld(60)
		spread := 300 + float64(n)*8
		for i := 0; i < n; i++ {
			spawnEnemy(w, (rng.Float64()-0.5)*spread, (rng.Float64()-0.5)*spread, 10)
		}
		sel := newSelector(t, w)

		for q := 0; q < 20; q++ {
			pos := core.Vec2{X: (rng.Float64() - 0.5) * spread, Y: (rng.Float64() - 0.5) * spread}
			k := 1 + rng.IntN(12)
			got := sel.NearestK(pos, k, core.CatEnemy)

			want := bruteNearest(w, pos, k)
			require.Len(t, got, len(want), "n=%d k=%d", n, k)
			var gotD []float64
			for _, id := range got {
				b, _ := w.Body(id)
				gotD = append(gotD, pos.DistSq(b.Pos))
			}
			assert.Equal(t, want, gotD, "n=%d k=%d pos=%v", n, k, pos)
			assert.True(t, slices.IsSortedFunc(gotD, cmp.Compare[float64]))
		}
	}
}

func TestNearestKFallsBackWhenEnemiesAreSparse(t *testing.T) {
	w := core.NewWorld(60)
	far := spawnEnemy(w, 1e5, 0, 10)
	farther := spawnEnemy(w, -2e5, 0, 10)
	near := spawnEnemy(w, 50, 0, 10)
	sel := newSelector(t, w)

	assert.Equal(t, []core.EntityID{near, far, farther}, sel.NearestK(core.Vec2{}, 10, core.CatEnemy))
	assert.Equal(t, []core.EntityID{near, far}, sel.NearestK(core.Vec2{}, 2, core.CatEnemy))
}

func TestNearestKTiesAreDeterministic(t *testing.T) {
	w := core.NewWorld(60)
	spawnEnemy(w, 30, 0, 10)
	spawnEnemy(w, -30, 0, 10)
	spawnEnemy(w, 0, 30, 10)
	spawnEnemy(w, 0, -30, 10)
	sel := newSelector(t, w)

	first := sel.NearestK(core.Vec2{}, 2, core.CatEnemy)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, sel.NearestK(core.Vec2{}, 2, core.CatEnemy))
	}
	assert.Len(t, first, 2)
}

func TestNearestKEdgeCases(t *testing.T) {
	w := core.NewWorld(60)
	sel := newSelector(t, w)
	assert.Empty(t, sel.NearestK(core.Vec2{}, 3, core.CatEnemy))
	_, ok := sel.Nearest(core.Vec2{}, core.CatEnemy)
	assert.False(t, ok)

	a := spawnEnemy(w, 10, 0, 10)
	spatial.Rebuild(w, sel.Broad)
	assert.Empty(t, sel.NearestK(core.Vec2{}, 0, core.CatEnemy))
	id, ok := sel.Nearest(core.Vec2{}, core.CatEnemy)
	require.True(t, ok)
	assert.Equal(t, a, id)

	// destroyed after the rebuild
	w.Destroy(a)
	assert.Empty(t, sel.NearestK(core.Vec2{}, 1, core.CatEnemy))
}

func TestMaxByPicksHighestHealthOnScreen(t *testing.T) {
	w := core.NewWorld(60)
	spawnEnemy(w, 10, 0, 5)
	tank := spawnEnemy(w, 200, 0, 50)
	spawnEnemy(w, 2000, 0, 500) // off screen
	twin := spawnEnemy(w, -200, 0, 50)
	sel := newSelector(t, w)

	id, ok := sel.MaxBy(core.Vec2{}, core.CatEnemy, HighestHealth(w))
	require.True(t, ok)
	// the twin sits in an earlier grid column, so it is encountered first
	assert.Equal(t, twin, id)
	assert.NotEqual(t, tank, id)
}

func TestMaxByEmpty(t *testing.T) {
	w := core.NewWorld(60)
	spawnEnemy(w, 5000, 0, 5)
	sel := newSelector(t, w)
	id, ok := sel.MaxBy(core.Vec2{}, core.CatEnemy, HighestHealth(w))
	assert.False(t, ok)
	assert.Zero(t, id)
}

func BenchmarkNearestK300(b *testing.B) {
	rng := rand.New(rand.NewPCG(2, 2))
	w := core.NewWorld(60)
	for i := 0; i < 300; i++ {
		spawnEnemy(w, (rng.Float64()-0.5)*1600, (rng.Float64()-0.5)*1200, 10)
	}
	sel := newSelector(b, w)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sel.NearestK(core.Vec2{}, 5, core.CatEnemy)
	}
}
