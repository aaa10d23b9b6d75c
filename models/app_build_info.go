// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo is the link-time metadata of a binary. Empty values print as
// "N/A".
type AppBuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// String renders the three "Build ..." lines printed by both binaries on
// start or on request.
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		orNA(a.Version), orNA(a.Date), orNA(a.Commit))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
