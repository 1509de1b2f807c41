package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration, loaded once at startup.
// Kept as a package global the same way the rest of the app shares the
// database pool.
type Config struct {
	JWTSecret string

	// Forecast engine knobs.
	HistoryMonths   int     // trailing window for revenue bucket statistics
	HistoryPageSize int     // rows per history page
	PageCeiling     int     // hard cap on history pages per aggregation
	TrendThreshold  float64 // relative slope threshold for trend labels
	IncludeZeroDays bool    // keep zero-value days in bucket statistics

	// Behavior of unmapped companies per orchestrator: "error" or "empty".
	RevenueMissingMapping  string
	PurchaseMissingMapping string

	// Holiday source: "static" or "api", plus an optional YAML file with
	// extra (regional) dates for the static source.
	HolidaySource string
	HolidayFile   string
}

// AppConfig holds the application-wide configuration.
var AppConfig Config

// Load reads the configuration from the environment. Only JWT_SECRET is
// required; everything else has a default.
func Load() error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}

	AppConfig = Config{
		JWTSecret:              secret,
		HistoryMonths:          envInt("FORECAST_HISTORY_MONTHS", 3),
		HistoryPageSize:        envInt("HISTORY_PAGE_SIZE", 1000),
		PageCeiling:            envInt("HISTORY_PAGE_CEILING", 50),
		TrendThreshold:         envFloat("TREND_THRESHOLD", 0.01),
		IncludeZeroDays:        envBool("STATS_INCLUDE_ZERO_DAYS", false),
		RevenueMissingMapping:  envString("REVENUE_MISSING_MAPPING", "error"),
		PurchaseMissingMapping: envString("PURCHASE_MISSING_MAPPING", "empty"),
		HolidaySource:          envString("HOLIDAY_SOURCE", "static"),
		HolidayFile:            os.Getenv("HOLIDAY_FILE"),
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
