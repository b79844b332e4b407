// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildTime string `json:"buildTime"`
}

// String formats the info for the -version flag. Unset fields get placeholders.
func (i Info) String() string {
	return fmt.Sprintf("psyhelp %s (commit %s, built %s)",
		orUnknown(i.Version, "dev"), orUnknown(i.GitCommit, "unknown"), orUnknown(i.BuildTime, "unknown"))
}

func orUnknown(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
