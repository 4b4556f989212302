package ecs

import (
	"context"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-ecs/internal/store"
	"github.com/askiada/go-ecs/pkg/ecs/model"
)

// SystemFunc is the body of a system. It receives the world it was registered
// on and must honour the context.
type SystemFunc func(ctx context.Context, world *World) error

// SystemOption configures a system at registration time.
type SystemOption func(system *model.SystemInfo)

// SystemRunAfter declares that the system runs after the named systems. The
// named systems must already be registered.
func SystemRunAfter(names ...string) SystemOption {
	return func(system *model.SystemInfo) {
		system.RunAfter = append(system.RunAfter, names...)
	}
}

type system struct {
	details *model.SystemInfo
	fn      SystemFunc
}

type scheduler struct {
	graph   graph.Graph[string, string]
	systems map[string]*system
	order   []string
}

func newScheduler() *scheduler {
	return &scheduler{
		graph: graph.NewWithStore(
			graph.StringHash,
			store.NewMemoryStore[string, string](),
			graph.Directed(),
			graph.PreventCycles(),
		),
		systems: make(map[string]*system),
	}
}

// AddSystem registers a named system. Run-after dependencies must reference
// systems that are already registered.
func (w *World) AddSystem(name string, fn SystemFunc, opts ...SystemOption) error {
	if _, ok := w.scheduler.systems[name]; ok {
		return errors.Wrapf(ErrSystemExists, "unable to add %s", name)
	}

	details := &model.SystemInfo{Name: name}
	for _, opt := range opts {
		opt(details)
	}

	for _, dep := range details.RunAfter {
		if _, ok := w.scheduler.systems[dep]; !ok && dep != name {
			return errors.Wrapf(ErrSystemNotFound, "system %s runs after %s", name, dep)
		}
	}

	err := w.scheduler.graph.AddVertex(name)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrapf(err, "unable to add system %s", name)
	}

	for _, dep := range details.RunAfter {
		err := w.scheduler.graph.AddEdge(dep, name)
		switch {
		case err == nil:
		case errors.Is(err, graph.ErrEdgeCreatesCycle):
			return errors.Wrapf(ErrSystemCycle, "system %s runs after %s", name, dep)
		case errors.Is(err, graph.ErrEdgeAlreadyExists):
		default:
			return errors.Wrapf(err, "unable to link system %s to %s", dep, name)
		}
	}

	w.scheduler.systems[name] = &system{details: details, fn: fn}
	w.scheduler.order = append(w.scheduler.order, name)

	for _, opt := range w.opts {
		err := opt.PrepareSystem(details)
		if err != nil {
			return errors.Wrap(err, "unable to prepare system")
		}
	}

	return nil
}

// stages groups systems by dependency depth. Systems of the same stage have all
// their dependencies in earlier stages and can run concurrently. Registration
// order is preserved inside a stage.
func (s *scheduler) stages() [][]*system {
	depth := make(map[string]int, len(s.order))

	var walk func(name string) int
	walk = func(name string) int {
		if d, ok := depth[name]; ok {
			return d
		}

		d := 0
		for _, dep := range s.systems[name].details.RunAfter {
			if dd := walk(dep) + 1; dd > d {
				d = dd
			}
		}
		depth[name] = d

		return d
	}

	maxDepth := 0
	for _, name := range s.order {
		if d := walk(name); d > maxDepth {
			maxDepth = d
		}
	}

	stages := make([][]*system, maxDepth+1)
	for _, name := range s.order {
		stages[depth[name]] = append(stages[depth[name]], s.systems[name])
	}

	return stages
}

// RunSystems runs all registered systems once, stage by stage. Systems of the
// same stage run concurrently and the run stops on the first error.
func (w *World) RunSystems(ctx context.Context) error {
	for _, stage := range w.scheduler.stages() {
		errGrp, dCtx := errgroup.WithContext(ctx)
		for _, sys := range stage {
			sys := sys
			errGrp.Go(func() error {
				start := time.Now()
				err := sys.fn(dCtx, w)
				if err != nil {
					return errors.Wrapf(err, "system %s:", sys.details.Name)
				}
				elapsed := time.Since(start)

				for _, opt := range w.opts {
					err := opt.OnSystemRun(sys.details, elapsed)
					if err != nil {
						return errors.Wrapf(err, "system %s:", sys.details.Name)
					}
				}

				return nil
			})
		}
		err := errGrp.Wait()
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return w.finishRun()
}

func (w *World) finishRun() error {
	for _, opt := range w.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish world option")
		}
	}

	return nil
}
