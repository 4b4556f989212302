package ecs

import (
	"reflect"
)

// resources stores at most one value per Go type.
type resources struct {
	data map[reflect.Type]any
}

func newResources() *resources {
	return &resources{data: make(map[reflect.Type]any)}
}

func (r *resources) add(typ reflect.Type, boxed any) {
	r.data[typ] = boxed
}

func (r *resources) get(typ reflect.Type) (any, bool) {
	boxed, ok := r.data[typ]

	return boxed, ok
}

func (r *resources) remove(typ reflect.Type) (any, bool) {
	boxed, ok := r.data[typ]
	if ok {
		delete(r.data, typ)
	}

	return boxed, ok
}

// AddResource stores value in the world, replacing any previous resource of the
// same type.
func AddResource[T any](world *World, value T) {
	world.resources.add(typeOf[T](), &value)
}

// GetResource returns a pointer to the stored resource of type T, or nil when no
// such resource exists. Mutations through the pointer are visible to later reads.
func GetResource[T any](world *World) *T {
	boxed, ok := world.resources.get(typeOf[T]())
	if !ok {
		return nil
	}

	return boxed.(*T)
}

// RemoveResource removes the resource of type T from the world and returns it.
// The second return value is false when no such resource was stored.
func RemoveResource[T any](world *World) (T, bool) {
	boxed, ok := world.resources.remove(typeOf[T]())
	if !ok {
		var zero T

		return zero, false
	}

	return *boxed.(*T), true
}
