// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces ConfigDir in tests, where HOME and
// XDG_CONFIG_HOME cannot be relied on across platforms.
var configDirOverride string

// SetConfigDirOverride makes ConfigDir return dir. An empty dir restores
// the platform default.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
