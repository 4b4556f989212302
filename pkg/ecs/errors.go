package ecs

import (
	"github.com/pkg/errors"
)

var (
	ErrComponentNotRegistered = errors.New("component is not registered")
	ErrComponentNotFound      = errors.New("entity does not have the component")
	ErrComponentNotQueried    = errors.New("component is not part of the query")
	ErrEntityNotFound         = errors.New("entity does not exist")
	ErrTooManyComponents      = errors.New("registered component types exceed the signature width")
	ErrSystemExists           = errors.New("system with the same name already exists")
	ErrSystemNotFound         = errors.New("system does not exist")
	ErrSystemCycle            = errors.New("system dependencies form a cycle")
)
