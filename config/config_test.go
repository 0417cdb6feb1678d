package config

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies that defaults are loaded and the window is parsed.
func TestLoadConfig_Defaults(t *testing.T) {
	// Clear relevant env vars to ensure defaults are used
	_ = os.Unsetenv("SERVER_PORT")
	_ = os.Unsetenv("SODA_BASE_URL")
	_ = os.Unsetenv("SODA_APP_TOKEN")
	_ = os.Unsetenv("SODA_TRIPS_DATASET")
	_ = os.Unsetenv("SODA_ZONES_DATASET")
	_ = os.Unsetenv("SODA_TIMEOUT_SECONDS")
	_ = os.Unsetenv("SODA_MAX_RETRIES")
	_ = os.Unsetenv("WINDOW_START")
	_ = os.Unsetenv("WINDOW_END")
	_ = os.Unsetenv("ROW_LIMIT")
	_ = os.Unsetenv("REFRESH_INTERVAL_MINUTES")
	_ = os.Unsetenv("DROP_NEGATIVE_FARES")

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	if AppConfig.Soda.BaseURL != "https://data.cityofnewyork.us" || AppConfig.Soda.TripsDataset != "4b4i-vvec" || AppConfig.Soda.ZonesDataset != "755u-8jsi" || AppConfig.Soda.TimeoutSeconds != 30 || AppConfig.Soda.MaxRetries != 3 {
		t.Fatalf("unexpected SODA defaults: %+v", AppConfig.Soda)
	}
	wantStart := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	if !AppConfig.Loader.WindowStart.Equal(wantStart) || !AppConfig.Loader.WindowEnd.Equal(wantEnd) {
		t.Fatalf("unexpected window: %v .. %v", AppConfig.Loader.WindowStart, AppConfig.Loader.WindowEnd)
	}
	if AppConfig.Loader.RowLimit != 50000 || AppConfig.Loader.RefreshIntervalMinutes != 60 || AppConfig.Loader.DropNegativeFares {
		t.Fatalf("unexpected loader defaults: %+v", AppConfig.Loader)
	}
}

// TestLoadConfig_EnvOverride verifies env vars win over defaults.
func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("WINDOW_START", "2023-03-01T00:00:00")
	t.Setenv("WINDOW_END", "2023-03-15T12:30:00")
	t.Setenv("ROW_LIMIT", "1000")
	t.Setenv("DROP_NEGATIVE_FARES", "true")

	LoadConfig()

	if got := AppConfig.Loader.WindowStart; !got.Equal(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("WINDOW_START override not applied: %v", got)
	}
	if got := AppConfig.Loader.WindowEnd; !got.Equal(time.Date(2023, 3, 15, 12, 30, 0, 0, time.UTC)) {
		t.Fatalf("WINDOW_END override not applied: %v", got)
	}
	if AppConfig.Loader.RowLimit != 1000 {
		t.Fatalf("ROW_LIMIT override not applied: %d", AppConfig.Loader.RowLimit)
	}
	if !AppConfig.Loader.DropNegativeFares {
		t.Fatalf("DROP_NEGATIVE_FARES override not applied")
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		// In child process: set empty AppConfig and call validateConfig() to trigger log.Fatalf (os.Exit)
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}

// TestValidateConfig_BadWindow asserts a malformed WINDOW_START is fatal (subprocess).
func TestValidateConfig_BadWindow(t *testing.T) {
	if os.Getenv("RUN_BAD_WINDOW") == "1" {
		_ = os.Setenv("WINDOW_START", "january 1st")
		LoadConfig()
		t.Fatalf("LoadConfig should have exited on malformed WINDOW_START")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_BadWindow")
	cmd.Env = append(os.Environ(), "RUN_BAD_WINDOW=1")
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
