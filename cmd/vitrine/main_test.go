package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vitrine/internal/config"
	"vitrine/internal/feed"
)

// These tests mutate the package-level flag variables, so none of them
// run in parallel.

func resetFlags(t *testing.T) {
	t.Helper()
	origFeedFile, origWatch, origCfgPath := feedFile, watch, cfgPath
	t.Cleanup(func() {
		feedFile, watch, cfgPath = origFeedFile, origWatch, origCfgPath
	})
	feedFile, watch, cfgPath = "", false, ""
}

func TestFeedSource_PrefersLocalFile(t *testing.T) {
	resetFlags(t)
	feedFile = "studies.csv"

	cfg := config.DefaultConfig()
	cfg.Feed.URL = "https://example.com/export?format=csv"

	src, watchPath, err := feedSource(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(feed.FileSource); !ok {
		t.Fatalf("expected a file source, got %T", src)
	}
	if watchPath != "" {
		t.Error("no watch path without --watch")
	}
}

func TestFeedSource_WatchNeedsFile(t *testing.T) {
	resetFlags(t)
	watch = true

	if _, _, err := feedSource(config.DefaultConfig()); err == nil {
		t.Fatal("--watch without --feed-file should error")
	}
}

func TestFeedSource_WatchFollowsFile(t *testing.T) {
	resetFlags(t)
	feedFile = "studies.csv"
	watch = true

	_, watchPath, err := feedSource(config.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if watchPath != "studies.csv" {
		t.Errorf("expected the feed file to be watched, got %q", watchPath)
	}
}

func TestFeedSource_ConfiguredURL(t *testing.T) {
	resetFlags(t)

	cfg := config.DefaultConfig()
	cfg.Feed.URL = "https://example.com/export?format=csv"

	src, _, err := feedSource(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*feed.HTTPSource); !ok {
		t.Fatalf("expected an HTTP source, got %T", src)
	}
}

func TestFeedSource_Unconfigured(t *testing.T) {
	resetFlags(t)

	src, _, err := feedSource(config.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != nil {
		t.Fatalf("no feed anywhere should mean a nil source, got %T", src)
	}
}

func TestLogFilePath(t *testing.T) {
	resetFlags(t)
	cfgPath = filepath.Join("home", ".vitrine", "config.yaml")

	cfg := config.DefaultConfig()

	cfg.Logging.File = "vitrine.log"
	if got := logFilePath(cfg); got != filepath.Join("home", ".vitrine", "vitrine.log") {
		t.Errorf("relative log file should land next to the config, got %q", got)
	}

	abs := filepath.Join(string(filepath.Separator), "var", "log", "vitrine.log")
	cfg.Logging.File = abs
	if got := logFilePath(cfg); got != abs {
		t.Errorf("absolute log file should be kept, got %q", got)
	}

	cfg.Logging.File = ""
	if got := logFilePath(cfg); got != "" {
		t.Errorf("empty log file should stay empty, got %q", got)
	}
}

func TestRunInit_RefusesToClobber(t *testing.T) {
	resetFlags(t)
	cfgPath = filepath.Join(t.TempDir(), "config.yaml")

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("first init should succeed: %v", err)
	}
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config file should exist: %v", err)
	}

	err := runInit(initCmd, nil)
	if err == nil {
		t.Fatal("second init should refuse to overwrite")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error: %v", err)
	}
}
