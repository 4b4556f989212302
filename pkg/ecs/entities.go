package ecs

import (
	"reflect"

	"github.com/pkg/errors"
)

// EntityID identifies a single entity row inside a World.
type EntityID int

// maxComponentTypes is the width of an entity signature.
const maxComponentTypes = 64

type entities struct {
	// columns holds one slot per entity row for every registered component type.
	// A slot holds a pointer to the component value, or nil when the entity does
	// not carry the component.
	columns    map[reflect.Type][]any
	masks      map[reflect.Type]uint64
	signatures []uint64
}

func newEntities() *entities {
	return &entities{
		columns: make(map[reflect.Type][]any),
		masks:   make(map[reflect.Type]uint64),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// register allocates a column and a signature bit for typ. Registering the same
// type again is a no-op.
func (e *entities) register(typ reflect.Type) error {
	if _, ok := e.masks[typ]; ok {
		return nil
	}
	if len(e.masks) == maxComponentTypes {
		return errors.Wrapf(ErrTooManyComponents, "unable to register %s", typ)
	}

	e.columns[typ] = make([]any, len(e.signatures))
	e.masks[typ] = 1 << uint(len(e.masks))

	return nil
}

// create claims the first free row, growing every column when no deleted row is
// available, and attaches the given components to it.
func (e *entities) create(components ...any) (EntityID, error) {
	row := -1
	for idx, sig := range e.signatures {
		if sig == 0 {
			row = idx

			break
		}
	}
	if row == -1 {
		for typ := range e.columns {
			e.columns[typ] = append(e.columns[typ], nil)
		}
		e.signatures = append(e.signatures, 0)
		row = len(e.signatures) - 1
	}

	for _, component := range components {
		err := e.attach(row, component)
		if err != nil {
			return 0, err
		}
	}

	return EntityID(row), nil
}

func (e *entities) attach(row int, component any) error {
	typ := reflect.TypeOf(component)
	mask, ok := e.masks[typ]
	if !ok {
		return errors.Wrapf(ErrComponentNotRegistered, "unable to attach %s", typ)
	}

	boxed := reflect.New(typ)
	boxed.Elem().Set(reflect.ValueOf(component))
	e.columns[typ][row] = boxed.Interface()
	e.signatures[row] |= mask

	return nil
}

func (e *entities) addComponent(id EntityID, component any) error {
	err := e.checkRow(id)
	if err != nil {
		return err
	}

	return e.attach(int(id), component)
}

// removeComponent clears the component bit from the entity signature. The column
// slot keeps its value but is unreachable until the component is attached again.
func (e *entities) removeComponent(typ reflect.Type, id EntityID) error {
	mask, ok := e.masks[typ]
	if !ok {
		return errors.Wrapf(ErrComponentNotRegistered, "unable to remove %s", typ)
	}
	err := e.checkRow(id)
	if err != nil {
		return err
	}

	e.signatures[id] &^= mask

	return nil
}

// delete zeroes the entity signature, which marks the row free for reuse.
func (e *entities) delete(id EntityID) error {
	err := e.checkRow(id)
	if err != nil {
		return err
	}

	e.signatures[id] = 0

	return nil
}

func (e *entities) component(typ reflect.Type, id EntityID) (any, error) {
	mask, ok := e.masks[typ]
	if !ok {
		return nil, errors.Wrapf(ErrComponentNotRegistered, "unable to get %s", typ)
	}
	err := e.checkRow(id)
	if err != nil {
		return nil, err
	}
	if e.signatures[id]&mask == 0 {
		return nil, errors.Wrapf(ErrComponentNotFound, "entity %d has no %s", id, typ)
	}

	return e.columns[typ][id], nil
}

func (e *entities) checkRow(id EntityID) error {
	if id < 0 || int(id) >= len(e.signatures) {
		return errors.Wrapf(ErrEntityNotFound, "entity %d", id)
	}

	return nil
}
