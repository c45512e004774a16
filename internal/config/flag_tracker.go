package config

import (
	"sync"
)

// FlagTracker records which command line flags the user set explicitly, so
// that only those override values from a configuration file
type FlagTracker struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewFlagTracker creates an empty tracker
func NewFlagTracker() *FlagTracker {
	return &FlagTracker{
		flags: make(map[string]bool),
	}
}

// NewFlagTrackerWithFlags creates a tracker from a copy of flags
func NewFlagTrackerWithFlags(flags map[string]bool) *FlagTracker {
	copied := make(map[string]bool, len(flags))
	for k, v := range flags {
		copied[k] = v
	}
	return &FlagTracker{
		flags: copied,
	}
}

// Set marks a flag as explicitly set
func (ft *FlagTracker) Set(flagName string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.flags[flagName] = true
}

// WasSet checks if a flag was explicitly set
func (ft *FlagTracker) WasSet(flagName string) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.flags[flagName]
}

// GetAll returns a copy of all flags
func (ft *FlagTracker) GetAll() map[string]bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()

	result := make(map[string]bool, len(ft.flags))
	for k, v := range ft.flags {
		result[k] = v
	}
	return result
}

// Clear removes all flag tracking
func (ft *FlagTracker) Clear() {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.flags = make(map[string]bool)
}

// Count returns the number of explicitly set flags
func (ft *FlagTracker) Count() int {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return len(ft.flags)
}

func (ft *FlagTracker) MergeString(base, override, flagName string) string {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

func (ft *FlagTracker) MergeInt(base, override int, flagName string) int {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

func (ft *FlagTracker) MergeBool(base, override bool, flagName string) bool {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeStringSlice keeps base unless the flag was set with at least one value
func (ft *FlagTracker) MergeStringSlice(base, override []string, flagName string) []string {
	if ft.WasSet(flagName) && len(override) > 0 {
		return override
	}
	return base
}

// MergeBindings layers override on top of base. Unlike the scalar merges a
// binding from the command line never discards the others from the file.
// The result is a new map.
func (ft *FlagTracker) MergeBindings(base, override map[string]int, flagName string) map[string]int {
	merged := make(map[string]int, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	if !ft.WasSet(flagName) {
		return merged
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
