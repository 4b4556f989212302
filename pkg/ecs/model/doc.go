// Package model provides the data structures shared between the ecs package and
// its option implementations. It defines the description of a system and the
// option interface the world drives while systems are registered and run.
package model
