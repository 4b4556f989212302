package ecs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-ecs/pkg/ecs"
	"github.com/askiada/go-ecs/pkg/ecs/drawer"
	"github.com/askiada/go-ecs/pkg/ecs/measure"
)

type recorder struct {
	mu  sync.Mutex
	got []string
}

func (r *recorder) system(name string) ecs.SystemFunc {
	return func(ctx context.Context, world *ecs.World) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.got = append(r.got, name)

		return nil
	}
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.got...)
}

func TestRunSystemsOrder(t *testing.T) {
	t.Parallel()

	world, err := ecs.New()
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, world.AddSystem("input", rec.system("input")))
	require.NoError(t, world.AddSystem("physics", rec.system("physics"), ecs.SystemRunAfter("input")))
	require.NoError(t, world.AddSystem("render", rec.system("render"), ecs.SystemRunAfter("physics")))

	require.NoError(t, world.RunSystems(context.Background()))
	assert.Equal(t, []string{"input", "physics", "render"}, rec.names())
}

func TestRunSystemsStages(t *testing.T) {
	t.Parallel()

	world, err := ecs.New()
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, world.AddSystem("input", rec.system("input")))
	require.NoError(t, world.AddSystem("audio", rec.system("audio")))
	require.NoError(t, world.AddSystem("render", rec.system("render"), ecs.SystemRunAfter("input", "audio")))

	require.NoError(t, world.RunSystems(context.Background()))

	got := rec.names()
	require.Len(t, got, 3)
	assert.ElementsMatch(t, []string{"input", "audio"}, got[:2])
	assert.Equal(t, "render", got[2])
}

func TestAddSystemDuplicate(t *testing.T) {
	t.Parallel()

	world, err := ecs.New()
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, world.AddSystem("input", rec.system("input")))
	err = world.AddSystem("input", rec.system("input"))
	assert.ErrorIs(t, err, ecs.ErrSystemExists)
}

func TestAddSystemUnknownDependency(t *testing.T) {
	t.Parallel()

	world, err := ecs.New()
	require.NoError(t, err)

	rec := &recorder{}
	err = world.AddSystem("render", rec.system("render"), ecs.SystemRunAfter("physics"))
	assert.ErrorIs(t, err, ecs.ErrSystemNotFound)
}

func TestAddSystemSelfDependency(t *testing.T) {
	t.Parallel()

	world, err := ecs.New()
	require.NoError(t, err)

	rec := &recorder{}
	err = world.AddSystem("render", rec.system("render"), ecs.SystemRunAfter("render"))
	assert.ErrorIs(t, err, ecs.ErrSystemCycle)
}

func TestRunSystemsError(t *testing.T) {
	t.Parallel()

	world, err := ecs.New()
	require.NoError(t, err)

	require.NoError(t, world.AddSystem("broken", func(ctx context.Context, world *ecs.World) error {
		return assert.AnError
	}))

	err = world.RunSystems(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRunSystemsCancel(t *testing.T) {
	t.Parallel()

	world, err := ecs.New()
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, world.AddSystem("input", rec.system("input")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = world.RunSystems(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSystemsMutateWorld(t *testing.T) {
	t.Parallel()

	type position struct{ x, y float64 }
	type velocity struct{ dx, dy float64 }

	world, err := ecs.New()
	require.NoError(t, err)
	require.NoError(t, ecs.RegisterComponent[position](world))
	require.NoError(t, ecs.RegisterComponent[velocity](world))

	_, err = world.CreateEntity(position{0, 0}, velocity{1, 2})
	require.NoError(t, err)
	_, err = world.CreateEntity(position{10, 10}, velocity{-1, 0})
	require.NoError(t, err)

	require.NoError(t, world.AddSystem("movement", func(ctx context.Context, world *ecs.World) error {
		res, err := ecs.With[velocity](ecs.With[position](world.Query())).Run()
		if err != nil {
			return err
		}
		positions, err := ecs.Column[position](res)
		if err != nil {
			return err
		}
		velocities, err := ecs.Column[velocity](res)
		if err != nil {
			return err
		}
		for i := range positions {
			positions[i].x += velocities[i].dx
			positions[i].y += velocities[i].dy
		}

		return nil
	}))

	require.NoError(t, world.RunSystems(context.Background()))
	require.NoError(t, world.RunSystems(context.Background()))

	res, err := ecs.With[position](world.Query()).Run()
	require.NoError(t, err)
	positions, err := ecs.Column[position](res)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	assert.Equal(t, &position{2, 4}, positions[0])
	assert.Equal(t, &position{8, 10}, positions[1])
}

func TestWorldMeasure(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	world, err := ecs.New(measure.WorldMeasure(msr))
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, world.AddSystem("input", rec.system("input")))
	require.NoError(t, world.AddSystem("render", rec.system("render"), ecs.SystemRunAfter("input")))

	require.NoError(t, world.RunSystems(context.Background()))

	metric := msr.GetMetric("input")
	require.NotNil(t, metric)
	assert.EqualValues(t, 1, metric.Runs())

	require.NoError(t, world.RunSystems(context.Background()))
	assert.EqualValues(t, 2, metric.Runs())
	assert.EqualValues(t, 2, msr.GetMetric("render").Runs())
}

func TestWorldDrawer(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	fileName := filepath.Join(t.TempDir(), "systems.gv")
	world, err := ecs.New(measure.WorldMeasure(msr), drawer.WorldDrawer(drawer.NewDOTDrawer(fileName), msr))
	require.NoError(t, err)

	slow := func(ctx context.Context, world *ecs.World) error {
		time.Sleep(time.Millisecond)

		return nil
	}
	require.NoError(t, world.AddSystem("input", slow))
	require.NoError(t, world.AddSystem("physics", slow, ecs.SystemRunAfter("input")))
	require.NoError(t, world.AddSystem("render", slow, ecs.SystemRunAfter("physics")))

	require.NoError(t, world.RunSystems(context.Background()))

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Contains(t, string(content), "digraph")
	assert.Contains(t, string(content), `"physics"`)
	assert.Contains(t, string(content), `"render"`)
}
