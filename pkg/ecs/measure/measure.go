package measure

import (
	"sync"
)

type DefaultMeasure struct {
	Systems map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Systems: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	mt := &DefaultMetric{
		mu: &sync.Mutex{},
	}
	m.Systems[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	return m.Systems[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	return m.Systems
}

var _ Measure = (*DefaultMeasure)(nil)
