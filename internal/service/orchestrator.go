// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

const (
	prefPersistedState     = "sync.persistedState"
	prefLastSyncFinishTime = "sync.lastSyncFinishTime"
	prefSendUsageData      = "app.sendUsageData"

	subscriberBuffer = 16
)

// OrchestratorDeps are the collaborators of a SyncOrchestrator.
type OrchestratorDeps struct {
	Identity    adapter.IdentityProvider
	Remote      adapter.SyncAdapter
	Credentials CredentialCache
	Engines     EngineRegistry
	EnginePrefs EnginePreferenceStore
	Prefs       store.Prefs
	Telemetry   TelemetryReporter

	// Now defaults to time.Now.
	Now func() time.Time
}

type syncOrchestrator struct {
	deps    OrchestratorDeps
	cfg     *config.ClientConfig
	logger  *logger.Logger
	builder SyncRunBuilder
	ids     *utils.UUIDGenerator

	scheduler Scheduler
	ctx       context.Context
	cancel    context.CancelFunc

	// slot holds a token while a run or account change is in progress.
	slot chan struct{}

	syncing      atomic.Bool
	backgrounded atomic.Bool

	stateMu sync.RWMutex
	state   models.DisplayState

	subsMu sync.Mutex
	subs   map[chan models.SyncEvent]struct{}
	closed bool
}

// NewSyncOrchestrator wires a SyncOrchestrator and its Scheduler. Close
// releases both.
func NewSyncOrchestrator(deps OrchestratorDeps, cfg *config.ClientConfig, log *logger.Logger) SyncOrchestrator {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	o := &syncOrchestrator{
		deps:   deps,
		cfg:    cfg,
		logger: log,
		ids:    utils.NewUUIDGenerator(),
		ctx:    ctx,
		cancel: cancel,
		slot:   make(chan struct{}, 1),
		state:  models.DisplayStateGood,
		subs:   make(map[chan models.SyncEvent]struct{}),
	}
	o.scheduler = NewScheduler(o, deps.Identity, cfg.Workers, log)

	return o
}

func (o *syncOrchestrator) SyncEverything(ctx context.Context, reason models.SyncReason) (models.SyncResult, error) {
	return o.run(ctx, reason, models.TogglableEngines)
}

func (o *syncOrchestrator) SyncNamedCollections(ctx context.Context, reason models.SyncReason, names []string) (models.SyncResult, error) {
	seen := make(map[models.EngineName]bool, len(names))
	engines := make([]models.EngineName, 0, len(names))

	for _, name := range models.EngineNames(names...) {
		if seen[name] {
			continue
		}
		seen[name] = true

		if !models.IsTogglable(name) {
			o.logger.Debug().Str("engine", name.String()).Msg("ignoring unknown engine name")
			continue
		}
		engines = append(engines, name)
	}

	return o.run(ctx, reason, engines)
}

func (o *syncOrchestrator) SyncTabs(ctx context.Context) (models.SyncResult, error) {
	return o.run(ctx, models.ReasonUser, []models.EngineName{models.EngineTabs})
}

func (o *syncOrchestrator) SyncHistory(ctx context.Context) (models.SyncResult, error) {
	return o.run(ctx, models.ReasonUser, []models.EngineName{models.EngineHistory})
}

func (o *syncOrchestrator) SetEngineEnabled(ctx context.Context, name models.EngineName, enabled bool) error {
	if err := o.acquire(ctx); err != nil {
		return err
	}
	defer o.release()

	return o.deps.EnginePrefs.SetEnabled(ctx, name, enabled)
}

func (o *syncOrchestrator) SetDeclinedAtSetup(ctx context.Context, names []models.EngineName) error {
	if err := o.acquire(ctx); err != nil {
		return err
	}
	defer o.release()

	return o.deps.EnginePrefs.SetDeclinedAtSetup(ctx, names)
}

func (o *syncOrchestrator) OnAddedAccount(ctx context.Context) error {
	if !o.deps.Identity.HasSyncableAccount(ctx) {
		o.logger.Debug().Msg("account not syncable yet; not starting sync")
		return nil
	}

	o.scheduler.Start(o.ctx)
	_, err := o.SyncEverything(ctx, models.ReasonDidLogin)
	return err
}

func (o *syncOrchestrator) OnRemovedAccount(ctx context.Context) error {
	o.scheduler.Stop()

	if err := o.acquire(ctx); err != nil {
		return err
	}
	defer o.release()

	stepCtx, cancel := o.stepContext(ctx)
	err := o.deps.Remote.Disconnect(stepCtx)
	cancel()
	if err != nil {
		o.logger.Warn().Err(err).Str("func", "syncOrchestrator.OnRemovedAccount").Msg("disconnect failed; wiping local state anyway")
	}

	var errs []error
	if err = o.deps.Credentials.Clear(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear credential cache: %w", err))
	}

	keys := []string{prefPersistedState, prefLastSyncFinishTime, prefDeclinedEngines}
	for _, name := range models.TogglableEngines {
		keys = append(keys, enabledPrefKey(name), changedPrefKey(name))
	}
	if err = o.deps.Prefs.Remove(ctx, keys...); err != nil {
		errs = append(errs, fmt.Errorf("clear sync prefs: %w", err))
	}

	o.setState(models.DisplayStateGood)
	o.logger.Info().Msg("sync state wiped after account removal")

	return errors.Join(errs...)
}

func (o *syncOrchestrator) SignOut(ctx context.Context) error {
	stepCtx, cancel := o.stepContext(ctx)
	err := o.deps.Identity.Logout(stepCtx)
	cancel()
	if err != nil {
		o.logger.Warn().Err(err).Str("func", "syncOrchestrator.SignOut").Msg("logout failed")
	}

	return o.OnRemovedAccount(ctx)
}

func (o *syncOrchestrator) ApplicationDidBecomeActive(ctx context.Context) {
	o.backgrounded.Store(false)

	if !o.deps.Identity.HasSyncableAccount(ctx) {
		return
	}

	o.scheduler.Start(o.ctx)

	now := o.deps.Now()
	then, ok, err := o.deps.Prefs.GetTime(ctx, prefLastSyncFinishTime)
	if err != nil {
		o.logger.Err(err).Str("func", "syncOrchestrator.ApplicationDidBecomeActive").Msg("failed to read last sync time")
		ok = false
	}
	if !ok {
		o.scheduler.SyncSoon(o.ctx, models.ReasonStartup)
		return
	}

	if now.Before(then) {
		o.logger.Debug().Msg("time was modified since last sync")
		o.scheduler.SyncSoon(o.ctx, models.ReasonStartup)
		return
	}

	since := now.Sub(then)
	o.logger.Debug().Dur("since", since).Msg("time since last sync")
	if since > o.cfg.Workers.ForegroundMinDelay {
		o.scheduler.SyncSoon(o.ctx, models.ReasonStartup)
	}
}

func (o *syncOrchestrator) ApplicationDidEnterBackground() {
	o.backgrounded.Store(true)
}

func (o *syncOrchestrator) IsSyncing() bool {
	return o.syncing.Load()
}

func (o *syncOrchestrator) DisplayState() models.DisplayState {
	if o.syncing.Load() {
		return models.DisplayStateInProgress
	}

	o.stateMu.RLock()
	defer o.stateMu.RUnlock()
	return o.state
}

func (o *syncOrchestrator) LastSyncFinishTime(ctx context.Context) (time.Time, bool) {
	t, ok, err := o.deps.Prefs.GetTime(ctx, prefLastSyncFinishTime)
	if err != nil {
		o.logger.Err(err).Str("func", "syncOrchestrator.LastSyncFinishTime").Msg("failed to read last sync time")
		return time.Time{}, false
	}
	return t, ok
}

func (o *syncOrchestrator) Subscribe() <-chan models.SyncEvent {
	ch := make(chan models.SyncEvent, subscriberBuffer)

	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	if o.closed {
		close(ch)
		return ch
	}
	o.subs[ch] = struct{}{}
	return ch
}

func (o *syncOrchestrator) Unsubscribe(ch <-chan models.SyncEvent) {
	o.subsMu.Lock()
	defer o.subsMu.Unlock()

	for c := range o.subs {
		if c == ch {
			delete(o.subs, c)
			close(c)
			return
		}
	}
}

func (o *syncOrchestrator) Close() {
	o.cancel()
	o.scheduler.Stop()

	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	for c := range o.subs {
		close(c)
	}
	o.subs = nil
}

func (o *syncOrchestrator) run(ctx context.Context, reason models.SyncReason, engines []models.EngineName) (models.SyncResult, error) {
	if err := o.acquire(ctx); err != nil {
		return models.SyncResult{Reason: reason}, err
	}
	defer o.release()

	runID, ok := utils.GetTraceIDFromContext(ctx)
	if !ok {
		runID = o.ids.Generate()
	}
	log := o.logger.ForRun(runID, string(reason))
	log.Info().Strs("engines", engineStrings(engines)).Msg("syncing")

	o.syncing.Store(true)
	o.notify(models.SyncEvent{Kind: models.SyncEventStarted, Reason: reason})

	result, err := o.execute(ctx, log, reason, engines)
	if errors.Is(err, adapter.ErrNoAccount) {
		err = fmt.Errorf("%w: %w", ErrNoSyncableAccount, err)
	}
	result = o.finish(ctx, log, result, err)

	return result, err
}

func (o *syncOrchestrator) execute(ctx context.Context, log *logger.Logger, reason models.SyncReason, engines []models.EngineName) (models.SyncResult, error) {
	result := models.SyncResult{Reason: reason}

	stepCtx, cancel := o.stepContext(ctx)
	device, err := o.deps.Identity.LocalDevice(stepCtx)
	cancel()
	if err != nil {
		log.Warn().Err(err).Msg("device id could not be retrieved")
		return result, fmt.Errorf("%w: %w", ErrDeviceID, err)
	}

	stepCtx, cancel = o.stepContext(ctx)
	token, err := o.deps.Identity.AccessToken(stepCtx, adapter.ScopeOldSync)
	cancel()
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrAccessToken, err)
	}
	if token.Key == nil || token.Key.K == "" {
		return result, ErrScopedKey
	}

	stepCtx, cancel = o.stepContext(ctx)
	tokenServerURL, err := o.deps.Identity.TokenServerEndpointURL(stepCtx)
	cancel()
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrNoTokenServerURL, err)
	}

	stepCtx, cancel = o.stepContext(ctx)
	cred, err := o.deps.Credentials.Credential(stepCtx, o.deps.Now(), false)
	cancel()
	if err != nil {
		return result, err
	}

	attempted, keys, excluded := o.enginesAndKeys(ctx, log, engines)
	result.Attempted = attempted
	result.Excluded = excluded

	changes, err := o.deps.EnginePrefs.TakeEnablementChanges(ctx)
	if err != nil {
		log.Err(err).Str("func", "syncOrchestrator.execute").Msg("failed to read engine enablement changes")
		changes = nil
	}

	persisted, _, err := o.deps.Prefs.GetString(ctx, prefPersistedState)
	if err != nil {
		log.Err(err).Str("func", "syncOrchestrator.execute").Msg("failed to read persisted state")
		persisted = ""
	}

	req := o.builder.Build(RunInputs{
		Reason:            reason,
		Engines:           attempted,
		EnablementChanges: changes,
		LocalKeys:         keys,
		AccessToken:       token,
		TokenServerURL:    tokenServerURL,
		PersistedState:    persisted,
		Device:            device,
	})

	stepCtx, cancel = o.stepContext(ctx)
	outcome, err := o.deps.Remote.Sync(stepCtx, cred, req)
	cancel()
	remoteOK := err == nil
	if err != nil {
		outcome.Status = ClassifyError(err)
		log.Warn().Err(err).Str("status", string(outcome.Status)).Msg("remote sync call failed")
	}

	if outcome.Status == models.StatusAuthError {
		o.deps.Credentials.Invalidate(ctx)
	}

	if outcome.PersistedState != "" {
		if err = o.deps.Prefs.SetString(ctx, prefPersistedState, outcome.PersistedState); err != nil {
			log.Err(err).Str("func", "syncOrchestrator.execute").Msg("failed to save persisted state")
		}
	}

	// Declined engines are only authoritative when the remote call answered.
	if remoteOK {
		if err = o.deps.EnginePrefs.ApplyDeclined(ctx, outcome.DeclinedEngines); err != nil {
			log.Err(err).Str("func", "syncOrchestrator.execute").Msg("failed to update engine enablement")
		}
	}

	log.Info().
		Str("status", string(outcome.Status)).
		Strs("declined", engineStrings(outcome.DeclinedEngines)).
		Int("telemetry_size", len(outcome.TelemetryPayload)).
		Msg("finished syncing")

	result.Outcome = outcome
	return result, nil
}

// enginesAndKeys registers each engine and collects the keys of those that
// need one. Engines that fail either step are excluded, not fatal.
func (o *syncOrchestrator) enginesAndKeys(ctx context.Context, log *logger.Logger, engines []models.EngineName) ([]models.EngineName, map[models.EngineName]string, []models.EngineName) {
	attempted := make([]models.EngineName, 0, len(engines))
	keys := make(map[models.EngineName]string)
	var excluded []models.EngineName
	var failures []error

	for _, name := range engines {
		if err := o.deps.Engines.Register(ctx, name); err != nil {
			failures = append(failures, err)
			excluded = append(excluded, name)
			continue
		}

		key, err := o.deps.Engines.LocalKey(ctx, name)
		switch {
		case errors.Is(err, ErrNoKeyNeeded):
		case err != nil:
			log.Warn().Err(err).Str("engine", name.String()).Msg("encryption key could not be retrieved for syncing")
			failures = append(failures, err)
			excluded = append(excluded, name)
			continue
		default:
			keys[name] = key
		}

		attempted = append(attempted, name)
	}

	if len(failures) > 0 {
		err := fmt.Errorf("%w: %w", ErrEngineAndKeyRetrieval, errors.Join(failures...))
		log.Warn().Err(err).Strs("excluded", engineStrings(excluded)).Msg("engines excluded from run")
	}

	return attempted, keys, excluded
}

func (o *syncOrchestrator) finish(ctx context.Context, log *logger.Logger, result models.SyncResult, runErr error) models.SyncResult {
	if runErr != nil {
		result.Outcome.Status = ClassifyError(runErr)
		log.Err(runErr).Str("status", string(result.Outcome.Status)).Msg("sync run setup failed")
	}

	now := o.deps.Now()
	result.State = ResolveDisplayState(result.Outcome)
	result.Finished = now

	o.setState(result.State)
	if result.State == models.DisplayStateGood {
		if err := o.deps.Prefs.SetTime(ctx, prefLastSyncFinishTime, now); err != nil {
			log.Err(err).Str("func", "syncOrchestrator.finish").Msg("failed to save last sync time")
		}
	}

	if o.deps.Telemetry != nil {
		o.deps.Telemetry.Observe(result)

		if runErr == nil && o.canSendUsageData(ctx) {
			stepCtx, cancel := o.stepContext(ctx)
			if err := o.deps.Telemetry.Report(stepCtx, result.Outcome); err != nil {
				log.Warn().Err(err).Msg("failed to report sync telemetry")
			}
			cancel()
		} else if runErr == nil {
			log.Debug().Msg("not sending usage data; sync telemetry skipped")
		}
	}

	o.syncing.Store(false)
	log.Info().Str("display_state", string(result.State)).Msg("ending sync")
	o.notify(models.SyncEvent{Kind: models.SyncEventFinished, Reason: result.Reason, Result: result})

	return result
}

func (o *syncOrchestrator) canSendUsageData(ctx context.Context) bool {
	v, ok, err := o.deps.Prefs.GetBool(ctx, prefSendUsageData)
	if err != nil || !ok {
		return o.cfg.App.SendUsageData
	}
	return v
}

func (o *syncOrchestrator) acquire(ctx context.Context) error {
	select {
	case o.slot <- struct{}{}:
		return nil
	default:
	}

	o.logger.Debug().Msg("waiting for the sync in progress")
	select {
	case o.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrSyncInProgress, ctx.Err())
	}
}

func (o *syncOrchestrator) release() {
	<-o.slot
}

func (o *syncOrchestrator) stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.cfg.Adapter.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.cfg.Adapter.RequestTimeout)
}

func (o *syncOrchestrator) setState(s models.DisplayState) {
	o.stateMu.Lock()
	o.state = s
	o.stateMu.Unlock()
}

// notify delivers ev to every subscriber without blocking. Nothing is sent
// while the host is backgrounded.
func (o *syncOrchestrator) notify(ev models.SyncEvent) {
	if o.backgrounded.Load() {
		return
	}

	o.subsMu.Lock()
	defer o.subsMu.Unlock()

	for c := range o.subs {
		select {
		case c <- ev:
		default:
			o.logger.Warn().Str("kind", string(ev.Kind)).Msg("dropping sync event for slow subscriber")
		}
	}
}
