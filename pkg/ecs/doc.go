// Package ecs provides an in-memory entity component system.
//
// The ecs package stores entities as rows across per-type component columns. Each registered
// component type is assigned a bit in a fixed-width signature, and each entity carries the
// signature of the component types attached to it. This layout keeps component storage dense
// and makes matching a query against the whole world a single mask comparison per entity.
//
// Queries are built incrementally: every requested component type adds its bit to the query
// mask, and running the query returns the ids of all entities whose signature contains the
// full mask, together with the matching component columns. Components are returned as
// pointers, so a query is also the way to mutate the world from the outside.
//
// On top of the storage layer, the package runs named systems over the world. Systems declare
// run-after dependencies on other systems; the scheduler stages them through a directed graph
// and runs independent systems of the same stage concurrently, stopping on the first error.
// World options can observe systems as they run, which is how the measure and drawer
// subpackages collect timings and render the system graph.
package ecs
