package measure

import (
	"time"

	"github.com/askiada/go-ecs/pkg/ecs/model"
)

type worldMeasure struct {
	Measure
}

func (wm *worldMeasure) New() error {
	return nil
}

func (wm *worldMeasure) PrepareSystem(system *model.SystemInfo) error {
	wm.AddMetric(system.Name)

	return nil
}

func (wm *worldMeasure) OnSystemRun(system *model.SystemInfo, elapsed time.Duration) error {
	wm.GetMetric(system.Name).AddDuration(elapsed)

	return nil
}

func (wm *worldMeasure) Finish() error {
	return nil
}

// WorldMeasure records run counts and durations for every system.
func WorldMeasure(measure Measure) model.WorldOption {
	return &worldMeasure{measure}
}
