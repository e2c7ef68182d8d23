// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	version     string
	buildCommit string
	buildTime   string
)

// GetVersionString returns a standard version header, including the host
// OS/arch the binary is running on when uname(2) (or its Windows
// equivalent) succeeds.
func GetVersionString() string {
	base := fmt.Sprintf("%s %v (%s), built %v", filepath.Base(os.Args[0]), version, buildCommit, buildTime)
	info, err := Uname()
	if err != nil {
		return base
	}
	return fmt.Sprintf("%s, %s/%s on %s", base, info.OS, info.Processor, info.Name)
}

func GetBuildCommit() string {
	return buildCommit
}

// GetVersion returns the semver compatible version number
func GetVersion() string {
	return version
}

// GetBuildTime returns the time at which the build took place
func GetBuildTime() string {
	return buildTime
}
