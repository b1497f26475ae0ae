// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncReason says why a sync run was started. The first four values are the
// ones callers normally use; the rest exist for hosts that distinguish finer
// triggers and are folded into the same wire values.
type SyncReason string

const (
	ReasonScheduled SyncReason = "scheduled"
	ReasonStartup   SyncReason = "startup"
	ReasonDidLogin  SyncReason = "didLogin"
	ReasonUser      SyncReason = "user"

	ReasonBackgrounded      SyncReason = "backgrounded"
	ReasonPush              SyncReason = "push"
	ReasonSyncNow           SyncReason = "syncNow"
	ReasonClientNameChanged SyncReason = "clientNameChanged"
	ReasonEngineEnabled     SyncReason = "engineEnabled"
)

// WireReason is the reason vocabulary understood by the remote sync service.
type WireReason string

const (
	WireReasonStartup       WireReason = "startup"
	WireReasonScheduled     WireReason = "scheduled"
	WireReasonBackgrounded  WireReason = "backgrounded"
	WireReasonUser          WireReason = "user"
	WireReasonEnabledChange WireReason = "enabled_change"
)

// Wire maps r onto the remote protocol's reason. Login and engine or client
// name changes are all reported as an enablement change; unrecognised reasons
// are treated as user initiated.
func (r SyncReason) Wire() WireReason {
	switch r {
	case ReasonStartup:
		return WireReasonStartup
	case ReasonScheduled:
		return WireReasonScheduled
	case ReasonBackgrounded:
		return WireReasonBackgrounded
	case ReasonDidLogin, ReasonClientNameChanged, ReasonEngineEnabled:
		return WireReasonEnabledChange
	default:
		return WireReasonUser
	}
}
