package model

// SystemInfo describes a registered system.
type SystemInfo struct {
	Name     string
	RunAfter []string
}
