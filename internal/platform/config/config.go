package config

import (
	"os"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	ProfilePath string
	LogLevel    string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("BIDPILOT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	profilePath := os.Getenv("BIDPILOT_PROFILE_PATH")
	if profilePath == "" {
		profilePath = "config/company_profile.json"
	}

	logLevel := os.Getenv("BIDPILOT_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return Server{
		Addr:        addr,
		ProfilePath: profilePath,
		LogLevel:    logLevel,
	}
}
