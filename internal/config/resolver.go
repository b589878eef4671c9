package config

import (
	"sync/atomic"

	"github.com/JPKribs/jellyfin-plugin-episodepostergenerator-sub001/internal/logging"
)

// Assignment binds a series to a named settings profile.
type Assignment struct {
	SeriesID string `toml:"series_id"`
	Profile  string `toml:"profile"`
}

// resolverState is the immutable lookup structure behind a Resolver.
// It is replaced wholesale on every write so readers never observe a
// half-built table.
type resolverState struct {
	defaults PosterSettings
	profiles map[string]PosterSettings
	bySeries map[string]string
}

// Resolver maps a series to its effective poster settings. Exactly one
// default configuration always exists; a series may be assigned to at most
// one override profile.
type Resolver struct {
	state atomic.Pointer[resolverState]
}

// NewResolver creates a resolver seeded with the default settings.
func NewResolver() *Resolver {
	r := &Resolver{}
	r.state.Store(&resolverState{
		defaults: DefaultPosterSettings(),
		profiles: map[string]PosterSettings{},
		bySeries: map[string]string{},
	})
	return r
}

// Resolve returns the effective settings for a series. A series without an
// assignment, or assigned to a profile that no longer exists, gets the
// default configuration.
func (r *Resolver) Resolve(seriesID string) PosterSettings {
	st := r.state.Load()
	if name, ok := st.bySeries[seriesID]; ok {
		if s, ok := st.profiles[name]; ok {
			return s
		}
	}
	return st.defaults
}

// Default returns the current default settings.
func (r *Resolver) Default() PosterSettings {
	return r.state.Load().defaults
}

// SetDefault replaces the default settings.
func (r *Resolver) SetDefault(s PosterSettings) {
	old := r.state.Load()
	next := old.clone()
	next.defaults = s
	r.state.Store(next)
}

// SetProfile creates or replaces a named settings profile.
func (r *Resolver) SetProfile(name string, s PosterSettings) {
	old := r.state.Load()
	next := old.clone()
	next.profiles[name] = s
	r.state.Store(next)
}

// Assign applies series-to-profile assignments. A series listed more than
// once keeps its first assignment; the conflict is logged, never fatal.
func (r *Resolver) Assign(assignments []Assignment) {
	old := r.state.Load()
	next := old.clone()
	for _, a := range assignments {
		if existing, ok := next.bySeries[a.SeriesID]; ok {
			if existing != a.Profile {
				logging.Warn("conflicting profile assignment",
					"series", a.SeriesID, "kept", existing, "ignored", a.Profile)
			}
			continue
		}
		next.bySeries[a.SeriesID] = a.Profile
	}
	r.state.Store(next)
}

func (s *resolverState) clone() *resolverState {
	next := &resolverState{
		defaults: s.defaults,
		profiles: make(map[string]PosterSettings, len(s.profiles)),
		bySeries: make(map[string]string, len(s.bySeries)),
	}
	for k, v := range s.profiles {
		next.profiles[k] = v
	}
	for k, v := range s.bySeries {
		next.bySeries[k] = v
	}
	return next
}
