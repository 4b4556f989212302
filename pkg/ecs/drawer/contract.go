package drawer

import (
	"github.com/askiada/go-ecs/pkg/ecs/measure"
)

// Drawer is an interface that defines the methods for drawing the system graph.
type Drawer interface {
	// AddSystem adds a system to the graph.
	AddSystem(name string) error
	// AddDependency adds an edge from a system to one that runs after it.
	AddDependency(parentName, childName string) error
	// Draw writes the graph to a file.
	Draw() error
	// AddMeasure annotates the graph with measured system timings.
	AddMeasure(measure measure.Measure) error
}
