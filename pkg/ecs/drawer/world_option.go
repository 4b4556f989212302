package drawer

import (
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-ecs/pkg/ecs/measure"
	"github.com/askiada/go-ecs/pkg/ecs/model"
)

type worldDrawer struct {
	Drawer
	m measure.Measure
}

func (wd *worldDrawer) New() error {
	return nil
}

func (wd *worldDrawer) PrepareSystem(system *model.SystemInfo) error {
	err := wd.AddSystem(system.Name)
	if err != nil {
		return err
	}

	for _, dep := range system.RunAfter {
		err := wd.AddDependency(dep, system.Name)
		if err != nil {
			return err
		}
	}

	return nil
}

func (wd *worldDrawer) OnSystemRun(system *model.SystemInfo, elapsed time.Duration) error {
	return nil
}

func (wd *worldDrawer) Finish() error {
	if wd.m != nil {
		err := wd.AddMeasure(wd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err := wd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw system graph")
	}

	return nil
}

// WorldDrawer renders the system dependency graph after every run. When measure
// is not nil, the drawing is annotated with measured system timings.
func WorldDrawer(drawer Drawer, measure measure.Measure) model.WorldOption {
	return &worldDrawer{drawer, measure}
}
