// Package config centralises all environment / flag configuration for the API.
// It should be imported only by `cmd/server` (and test code). Business‑logic
// layers receive an already‑built Config instance via dependency‑injection.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Config holds every runtime option the server needs.
// Keep it flat and simple—prefer primitive types over embedding structs.
type Config struct {
	// Network
	Port string `validate:"required,numeric"`

	// Data stores
	MongoURI         string `validate:"required"`
	DBName           string `validate:"required"`
	EventsCollection string `validate:"required"`

	// Issue search API
	UpstreamURL     string        `validate:"required,url"`
	UpstreamToken   string
	UpstreamTimeout time.Duration `validate:"gt=0"`
	UpstreamRPS     float64       `validate:"gte=0"`
	UpstreamBurst   int           `validate:"gte=1"`

	// Server tuning
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`

	// Extra relative periods, read from PeriodsFile when set
	PeriodsFile     string
	RelativePeriods map[string]string
}

// Load parses the environment (and an optional .env file) into Config.
// It exits on missing or invalid variables so mis‑configurations fail fast.
func Load() Config {
	// godotenv.Load() is a no‑op if .env doesn't exist—safe in production.
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         must("MONGODB_URI"),
		DBName:           getEnv("MONGODB_DB", "similar_trace"),
		EventsCollection: getEnv("MONGODB_EVENTS_COLLECTION", "events"),
		UpstreamURL:      must("UPSTREAM_API_URL"),
		UpstreamToken:    os.Getenv("UPSTREAM_API_TOKEN"),
		UpstreamTimeout:  getDuration("UPSTREAM_TIMEOUT_SEC", 10),
		UpstreamRPS:      getFloat("UPSTREAM_RPS", 20),
		UpstreamBurst:    getInt("UPSTREAM_BURST", 5),
		ReadTimeout:      getDuration("READ_TIMEOUT_SEC", 5),
		WriteTimeout:     getDuration("WRITE_TIMEOUT_SEC", 15),
		PeriodsFile:      os.Getenv("PERIODS_FILE"),
	}

	periods, err := LoadPeriods(cfg.PeriodsFile)
	if err != nil {
		log.Fatalf("loading %s: %v", cfg.PeriodsFile, err)
	}
	cfg.RelativePeriods = periods

	if err := Validate(cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return cfg
}

// Validate checks the struct tags on cfg.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return nil
}

type periodsFile struct {
	RelativePeriods map[string]string `mapstructure:"relativePeriods" validate:"dive,keys,required,endkeys,required"`
}

// LoadPeriods reads extra relative periods from a YAML (or JSON/TOML, by
// extension) file of the form:
//
//	relativePeriods:
//	  2w: Last 2 weeks
//
// An empty path returns nil.
func LoadPeriods(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read periods file: %w", err)
	}

	var pf periodsFile
	if err := v.Unmarshal(&pf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal periods file: %w", err)
	}
	if err := validate.Struct(pf); err != nil {
		return nil, formatValidationError(err)
	}
	return pf.RelativePeriods, nil
}

// must fetches a required env var or terminates the program.
func must(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("env var %s is required", key)
	}
	return val
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getDuration reads an integer (seconds) from env, falling back to defaultSec.
func getDuration(key string, defaultSec int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			return time.Duration(sec) * time.Second
		}
		log.Printf("invalid %s=%q; using default %ds", key, v, defaultSec)
	}
	return time.Duration(defaultSec) * time.Second
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q; using default %d", key, v, defaultVal)
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid %s=%q; using default %g", key, v, defaultVal)
	}
	return defaultVal
}

// formatValidationError formats validator errors into a readable string
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed validation: %s", e.Namespace(), validationMsg(e)))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func validationMsg(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "url":
		return "must be a URL"
	case "numeric":
		return "must be numeric"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	default:
		return fmt.Sprintf("failed validation tag: %s", e.Tag())
	}
}
