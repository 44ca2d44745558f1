package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultSnapshotPath is where the map snapshot lives unless
	// overridden.
	DefaultSnapshotPath = "~/.arbor/map.json"

	// DefaultDBPath is the SQLite database location for the sqlite
	// backend.
	DefaultDBPath = "~/.arbor/map.db"
)

// SnapshotPath returns the snapshot path from ARBOR_PATH, falling back
// to DefaultSnapshotPath.
func SnapshotPath() string {
	if env := os.Getenv("ARBOR_PATH"); env != "" {
		return env
	}
	return DefaultSnapshotPath
}

// DBPath returns the SQLite database path from ARBOR_DB_PATH, falling
// back to DefaultDBPath.
func DBPath() string {
	if env := os.Getenv("ARBOR_DB_PATH"); env != "" {
		return env
	}
	return DefaultDBPath
}

// Backend returns the persistence backend name from ARBOR_BACKEND:
// "json" (default) or "sqlite".
func Backend() string {
	if env := os.Getenv("ARBOR_BACKEND"); env != "" {
		return env
	}
	return "json"
}

// SequenceTimeout returns the key-sequence buffer timeout, overridable
// in milliseconds via ARBOR_SEQ_TIMEOUT_MS.
func SequenceTimeout() time.Duration {
	if env := os.Getenv("ARBOR_SEQ_TIMEOUT_MS"); env != "" {
		if ms, err := strconv.Atoi(env); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 750 * time.Millisecond
}

// AllowRootCascadeDelete reports whether deleting the root with its
// subtree is permitted (ARBOR_ALLOW_ROOT_CASCADE=1).
func AllowRootCascadeDelete() bool {
	return boolEnv("ARBOR_ALLOW_ROOT_CASCADE", false)
}

// DiscardEmptyNodes reports whether an empty node is removed when
// insert mode exits. On by default; set ARBOR_KEEP_EMPTY_NODES=1 to
// keep empty nodes.
func DiscardEmptyNodes() bool {
	return !boolEnv("ARBOR_KEEP_EMPTY_NODES", false)
}

func boolEnv(name string, fallback bool) bool {
	env := os.Getenv(name)
	if env == "" {
		return fallback
	}
	b, err := strconv.ParseBool(env)
	if err != nil {
		return fallback
	}
	return b
}
