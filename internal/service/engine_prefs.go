// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/models"
)

const prefDeclinedEngines = "fxa.cwts.declinedSyncEngines"

func enabledPrefKey(name models.EngineName) string {
	return "sync.engine." + name.String() + ".enabled"
}

func changedPrefKey(name models.EngineName) string {
	return "sync.engine." + name.String() + ".enabledStateChanged"
}

type enginePreferenceStore struct {
	prefs  store.Prefs
	logger *logger.Logger
}

// NewEnginePreferenceStore returns an EnginePreferenceStore over prefs.
func NewEnginePreferenceStore(prefs store.Prefs, log *logger.Logger) EnginePreferenceStore {
	return &enginePreferenceStore{prefs: prefs, logger: log}
}

// IsEnabled reports true for engines never toggled.
func (s *enginePreferenceStore) IsEnabled(ctx context.Context, name models.EngineName) (bool, error) {
	v, ok, err := s.prefs.GetBool(ctx, enabledPrefKey(name))
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return v, nil
}

func (s *enginePreferenceStore) SetEnabled(ctx context.Context, name models.EngineName, enabled bool) error {
	if !models.IsTogglable(name) {
		return fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}
	if err := s.prefs.SetBool(ctx, enabledPrefKey(name), enabled); err != nil {
		return err
	}
	return s.prefs.SetBool(ctx, changedPrefKey(name), true)
}

func (s *enginePreferenceStore) HasChangedSinceLastSync(ctx context.Context, name models.EngineName) (bool, error) {
	_, ok, err := s.prefs.GetBool(ctx, changedPrefKey(name))
	return ok, err
}

func (s *enginePreferenceStore) ClearChangedFlag(ctx context.Context, name models.EngineName) error {
	return s.prefs.Remove(ctx, changedPrefKey(name))
}

func (s *enginePreferenceStore) SetDeclinedAtSetup(ctx context.Context, names []models.EngineName) error {
	if names == nil {
		names = []models.EngineName{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return s.prefs.SetString(ctx, prefDeclinedEngines, string(raw))
}

func (s *enginePreferenceStore) TakeEnablementChanges(ctx context.Context) (models.EngineEnablementChange, error) {
	changes := make(models.EngineEnablementChange)

	raw, ok, err := s.prefs.GetString(ctx, prefDeclinedEngines)
	if err != nil {
		return nil, fmt.Errorf("read declined engines: %w", err)
	}

	if ok {
		if err = s.prefs.Remove(ctx, prefDeclinedEngines); err != nil {
			return nil, fmt.Errorf("remove declined engines: %w", err)
		}

		var declined []models.EngineName
		if err = json.Unmarshal([]byte(raw), &declined); err != nil {
			s.logger.Warn().Err(err).Str("func", "enginePreferenceStore.TakeEnablementChanges").Msg("discarding malformed declined engines list")
		}
		for _, name := range declined {
			changes[name] = false
		}
	} else {
		for _, name := range models.TogglableEngines {
			changed, err := s.HasChangedSinceLastSync(ctx, name)
			if err != nil {
				return nil, err
			}
			if !changed {
				continue
			}

			enabled, set, err := s.prefs.GetBool(ctx, enabledPrefKey(name))
			if err != nil {
				return nil, err
			}
			if set {
				changes[name] = enabled
			}
			if err = s.ClearChangedFlag(ctx, name); err != nil {
				return nil, err
			}
		}
	}

	if len(changes) > 0 {
		s.logger.Info().
			Strs("enable", engineStrings(changes.Enabled())).
			Strs("disable", engineStrings(changes.Disabled())).
			Msg("engine enablement changes")
	}

	return changes, nil
}

// ApplyDeclined leaves enablement untouched when the service sent no
// declined list at all; an empty list enables every engine.
func (s *enginePreferenceStore) ApplyDeclined(ctx context.Context, declined []models.EngineName) error {
	if declined == nil {
		s.logger.Debug().Str("func", "enginePreferenceStore.ApplyDeclined").Msg("no declined list in outcome; enablement unchanged")
		return nil
	}

	out := models.SyncOutcome{DeclinedEngines: declined}

	for _, name := range models.TogglableEngines {
		enabled := !out.IsDeclined(name)
		if err := s.prefs.SetBool(ctx, enabledPrefKey(name), enabled); err != nil {
			return fmt.Errorf("set %s enabled: %w", name, err)
		}
		if err := s.ClearChangedFlag(ctx, name); err != nil {
			return fmt.Errorf("clear %s changed flag: %w", name, err)
		}
		s.logger.Debug().Str("engine", name.String()).Bool("enabled", enabled).Msg("engine enablement updated")
	}

	return nil
}

func engineStrings(names []models.EngineName) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}
