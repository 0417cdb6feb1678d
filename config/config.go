package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// floatingTimestampLayout is the layout used by the Socrata SODA API for
// floating_timestamp literals. The loading window bounds are configured
// in the same layout so they can be passed to the API verbatim.
const floatingTimestampLayout = "2006-01-02T15:04:05"

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, the Socrata (SODA) API connection, and the trip-loading window.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	SODA_BASE_URL=https://data.cityofnewyork.us
//	SODA_APP_TOKEN=
//	SODA_TRIPS_DATASET=4b4i-vvec
//	SODA_ZONES_DATASET=755u-8jsi
//	SODA_TIMEOUT_SECONDS=30
//	SODA_MAX_RETRIES=3
//	WINDOW_START=2023-01-01T00:00:00
//	WINDOW_END=2023-02-01T00:00:00
//	ROW_LIMIT=50000
//	REFRESH_INTERVAL_MINUTES=60
//	DROP_NEGATIVE_FARES=false
type Config struct {
	Server ServerConfig // HTTP server configuration
	Soda   SodaConfig   // Socrata Open Data API connection settings
	Loader LoaderConfig // Trip loading window and row handling policy
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// SodaConfig defines connection details for the Socrata Open Data API.
//
// Fields:
//   - BaseURL: scheme+host of the data portal (e.g., "https://data.cityofnewyork.us").
//   - AppToken: optional X-App-Token; empty means anonymous (throttled) access.
//   - TripsDataset: dataset identifier of the yellow-taxi trip records.
//   - ZonesDataset: dataset identifier of the taxi zone lookup table.
//   - TimeoutSeconds: per-request HTTP timeout.
//   - MaxRetries: retry attempts for transient failures before giving up.
type SodaConfig struct {
	BaseURL        string
	AppToken       string
	TripsDataset   string
	ZonesDataset   string
	TimeoutSeconds int
	MaxRetries     int
}

// LoaderConfig controls which slice of the trip dataset is loaded and how
// questionable rows are treated.
//
// Fields:
//   - WindowStart: inclusive lower bound on tpep_pickup_datetime.
//   - WindowEnd: exclusive upper bound on tpep_pickup_datetime.
//   - RowLimit: maximum number of rows fetched from the API (0 disables the cap).
//   - RefreshIntervalMinutes: periodic reload interval; 0 disables background refresh.
//   - DropNegativeFares: when true, rows with fare_amount < 0 (refunds/voids)
//     are dropped during normalization instead of kept.
type LoaderConfig struct {
	WindowStart            time.Time
	WindowEnd              time.Time
	RowLimit               int
	RefreshIntervalMinutes int
	DropNegativeFares      bool
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Parses the loading window bounds from SODA floating_timestamp layout.
//   - Calls validateConfig() to ensure required fields are present and sane.
//
// Fatal exit:
//   - If required variables are missing or malformed, validateConfig() will
//     terminate the app with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("SODA_BASE_URL", "https://data.cityofnewyork.us")
	viper.SetDefault("SODA_APP_TOKEN", "")
	viper.SetDefault("SODA_TRIPS_DATASET", "4b4i-vvec")
	viper.SetDefault("SODA_ZONES_DATASET", "755u-8jsi")
	viper.SetDefault("SODA_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SODA_MAX_RETRIES", 3)

	viper.SetDefault("WINDOW_START", "2023-01-01T00:00:00")
	viper.SetDefault("WINDOW_END", "2023-02-01T00:00:00")
	viper.SetDefault("ROW_LIMIT", 50000)
	viper.SetDefault("REFRESH_INTERVAL_MINUTES", 60)
	viper.SetDefault("DROP_NEGATIVE_FARES", false)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Soda: SodaConfig{
			BaseURL:        viper.GetString("SODA_BASE_URL"),
			AppToken:       viper.GetString("SODA_APP_TOKEN"),
			TripsDataset:   viper.GetString("SODA_TRIPS_DATASET"),
			ZonesDataset:   viper.GetString("SODA_ZONES_DATASET"),
			TimeoutSeconds: viper.GetInt("SODA_TIMEOUT_SECONDS"),
			MaxRetries:     viper.GetInt("SODA_MAX_RETRIES"),
		},
		Loader: LoaderConfig{
			RowLimit:               viper.GetInt("ROW_LIMIT"),
			RefreshIntervalMinutes: viper.GetInt("REFRESH_INTERVAL_MINUTES"),
			DropNegativeFares:      viper.GetBool("DROP_NEGATIVE_FARES"),
		},
	}

	// Window bounds use the SODA floating_timestamp layout; parse failures are
	// reported through validateConfig (zero time = invalid).
	if ws, err := time.Parse(floatingTimestampLayout, viper.GetString("WINDOW_START")); err == nil {
		AppConfig.Loader.WindowStart = ws.UTC()
	}
	if we, err := time.Parse(floatingTimestampLayout, viper.GetString("WINDOW_END")); err == nil {
		AppConfig.Loader.WindowEnd = we.UTC()
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Soda.BaseURL == "" {
		missing = append(missing, "SODA_BASE_URL")
	}
	if AppConfig.Soda.TripsDataset == "" {
		missing = append(missing, "SODA_TRIPS_DATASET")
	}
	if AppConfig.Soda.ZonesDataset == "" {
		missing = append(missing, "SODA_ZONES_DATASET")
	}
	if AppConfig.Soda.TimeoutSeconds <= 0 {
		missing = append(missing, "SODA_TIMEOUT_SECONDS")
	}
	if AppConfig.Soda.MaxRetries < 0 {
		missing = append(missing, "SODA_MAX_RETRIES")
	}
	if AppConfig.Loader.WindowStart.IsZero() {
		missing = append(missing, "WINDOW_START")
	}
	if AppConfig.Loader.WindowEnd.IsZero() {
		missing = append(missing, "WINDOW_END")
	}
	if AppConfig.Loader.RowLimit < 0 {
		missing = append(missing, "ROW_LIMIT")
	}

	if len(missing) > 0 {
		log.Fatalf("Missing or invalid required environment variables: %v\n", missing)
	}
}
