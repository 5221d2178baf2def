// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/vidkeys/vidkeys/constant"
	"github.com/vidkeys/vidkeys/filesystem"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "VIDKEYS_CONFIG_PATH"

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The path can be overridden via the VIDKEYS_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Vidkeys))
}

// ConfigFile resolves the TOML file viper reads and writes.
func ConfigFile() string {
	return filepath.Join(Config(), constant.Vidkeys+".toml")
}

// Logs resolves the absolute path to the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Temp resolves a volatile directory for sockets and other per-run artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Vidkeys))
}

// Socket returns a fresh IPC socket path inside Temp for the given run identifier.
func Socket(id string) string {
	return filepath.Join(Temp(), fmt.Sprintf("mpv-%s.sock", id))
}
