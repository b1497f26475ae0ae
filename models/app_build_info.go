// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const buildInfoNotAvailable = "N/A"

// AppBuildInfo is the build metadata injected by linker flags. It is logged at
// startup and exported as the build_info metric.
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// NewAppBuildInfo fills blank values with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		Version: orNotAvailable(version),
		Date:    orNotAvailable(date),
		Commit:  orNotAvailable(commit),
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return buildInfoNotAvailable
	}
	return s
}
