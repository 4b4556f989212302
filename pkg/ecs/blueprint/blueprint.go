// Package blueprint spawns entities from declarative YAML documents.
//
// A blueprint lists entities as named component maps. Component names are bound
// to Go types through a Registry, and the component fields are decoded into the
// registered struct types before the entities are created in a world.
package blueprint

import (
	"io"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-ecs/pkg/ecs"
)

var ErrUnknownComponent = errors.New("component name is not in the registry")

// Registry binds component names used in blueprints to Go types.
type Registry struct {
	types map[string]reflect.Type
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]reflect.Type)}
}

// Register binds name to the component type T.
func Register[T any](registry *Registry, name string) {
	registry.types[name] = reflect.TypeOf((*T)(nil)).Elem()
}

// Blueprint is a declarative list of entities to spawn.
type Blueprint struct {
	Entities []EntityDef `yaml:"entities"`
}

// EntityDef describes one entity as a map of component name to component fields.
type EntityDef struct {
	Name       string                    `yaml:"name"`
	Components map[string]map[string]any `yaml:"components"`
}

// Load decodes a blueprint from YAML. Unknown document fields are an error.
func Load(r io.Reader) (*Blueprint, error) {
	blueprint := &Blueprint{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(blueprint)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode blueprint")
	}

	return blueprint, nil
}

// Spawn registers every component type referenced by the blueprint and creates
// its entities in the world. The returned ids follow the blueprint order.
func (b *Blueprint) Spawn(world *ecs.World, registry *Registry) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(b.Entities))

	for _, def := range b.Entities {
		names := make([]string, 0, len(def.Components))
		for name := range def.Components {
			names = append(names, name)
		}
		sort.Strings(names)

		components := make([]any, 0, len(names))
		for _, name := range names {
			component, err := decodeComponent(world, registry, name, def.Components[name])
			if err != nil {
				return nil, errors.Wrapf(err, "entity %s", def.Name)
			}
			components = append(components, component)
		}

		id, err := world.CreateEntity(components...)
		if err != nil {
			return nil, errors.Wrapf(err, "entity %s", def.Name)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func decodeComponent(world *ecs.World, registry *Registry, name string, fields map[string]any) (any, error) {
	typ, ok := registry.types[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownComponent, "component %s", name)
	}

	err := world.RegisterComponentType(typ)
	if err != nil {
		return nil, errors.Wrapf(err, "component %s", name)
	}

	target := reflect.New(typ)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target.Interface(),
		ErrorUnused: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "component %s", name)
	}

	err = dec.Decode(fields)
	if err != nil {
		return nil, errors.Wrapf(err, "component %s", name)
	}

	return target.Elem().Interface(), nil
}
