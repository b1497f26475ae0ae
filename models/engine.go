// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EngineName identifies a local data collection that can take part in a
// sync run.
type EngineName string

const (
	// EngineTabs is the remote tabs collection.
	EngineTabs EngineName = "tabs"
	// EngineBookmarks is the bookmarks collection (places storage).
	EngineBookmarks EngineName = "bookmarks"
	// EngineHistory is the browsing history collection (places storage).
	EngineHistory EngineName = "history"
	// EnginePasswords is the saved logins collection. It is the only engine
	// whose storage is encrypted at rest with a locally held key.
	EnginePasswords EngineName = "passwords"
)

// TogglableEngines lists, in order, the engines a user can enable or disable
// locally. Any other name is unknown to the orchestrator.
var TogglableEngines = []EngineName{
	EngineTabs,
	EngineBookmarks,
	EngineHistory,
	EnginePasswords,
}

// IsTogglable reports whether name is one of [TogglableEngines].
func IsTogglable(name EngineName) bool {
	for _, e := range TogglableEngines {
		if e == name {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (e EngineName) String() string {
	return string(e)
}

// EngineNames converts raw strings into engine names without filtering.
func EngineNames(raw ...string) []EngineName {
	out := make([]EngineName, 0, len(raw))
	for _, r := range raw {
		out = append(out, EngineName(r))
	}
	return out
}

// EngineEnablementChange maps an engine to its new enabled state: true when
// the user turned it on since the last run, false when it was turned off.
type EngineEnablementChange map[EngineName]bool

// Enabled returns the engines switched on, in [TogglableEngines] order
// followed by any others.
func (c EngineEnablementChange) Enabled() []EngineName {
	return c.filter(true)
}

// Disabled returns the engines switched off.
func (c EngineEnablementChange) Disabled() []EngineName {
	return c.filter(false)
}

func (c EngineEnablementChange) filter(want bool) []EngineName {
	out := make([]EngineName, 0, len(c))
	for _, e := range TogglableEngines {
		if v, ok := c[e]; ok && v == want {
			out = append(out, e)
		}
	}
	for e, v := range c {
		if v == want && !IsTogglable(e) {
			out = append(out, e)
		}
	}
	return out
}
