package ecs

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/askiada/go-ecs/pkg/ecs/model"
)

// World owns the resource store, the entity registry and the system scheduler.
type World struct {
	resources *resources
	entities  *entities
	scheduler *scheduler
	opts      []model.WorldOption
}

// New creates a new world.
func New(opts ...model.WorldOption) (*World, error) {
	world := &World{
		resources: newResources(),
		entities:  newEntities(),
		scheduler: newScheduler(),
		opts:      opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply world option")
		}
	}

	return world, nil
}

// RegisterComponent registers the component type T with the world. Components
// must be registered before they are attached or queried.
func RegisterComponent[T any](world *World) error {
	return world.entities.register(typeOf[T]())
}

// RegisterComponentType registers a component type known only at runtime. It is
// the untyped counterpart of RegisterComponent, used by data-driven spawners.
func (w *World) RegisterComponentType(typ reflect.Type) error {
	return w.entities.register(typ)
}

// CreateEntity creates an entity carrying the given components, reusing the row
// of a deleted entity when one exists. Components are passed by value and every
// component type must be registered.
func (w *World) CreateEntity(components ...any) (EntityID, error) {
	return w.entities.create(components...)
}

// AddComponent attaches a component to an existing entity.
func (w *World) AddComponent(id EntityID, component any) error {
	return w.entities.addComponent(id, component)
}

// RemoveComponent detaches the component of type T from the entity.
func RemoveComponent[T any](world *World, id EntityID) error {
	return world.entities.removeComponent(typeOf[T](), id)
}

// DeleteEntity deletes the entity. Its row is reused by a later CreateEntity.
func (w *World) DeleteEntity(id EntityID) error {
	return w.entities.delete(id)
}

// Component returns a pointer to the entity's component of type T.
func Component[T any](world *World, id EntityID) (*T, error) {
	boxed, err := world.entities.component(typeOf[T](), id)
	if err != nil {
		return nil, err
	}

	return boxed.(*T), nil
}
