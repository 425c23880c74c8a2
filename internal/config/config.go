package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// BackendURL is the base URL of the LIA backend (chat, summarize, ...).
	BackendURL string
	// HTTPAddress is the listen address of the local dev stub backend.
	HTTPAddress string
	// InactivityTimeout resets the kiosk to the splash screen when no input
	// arrives for this long.
	InactivityTimeout time.Duration
	// TTSEnabled is the initial state of the text-to-speech toggle.
	TTSEnabled bool
}

// Load reads environment variables and returns Config with sane defaults.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	backend := os.Getenv("LIA_BACKEND_URL")
	if backend == "" {
		backend = "http://localhost:8080"
	}

	addr := os.Getenv("HTTP_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}

	inactivity := 90 * time.Second
	if v := os.Getenv("LIA_INACTIVITY_SECONDS"); v != "" {
		secs, perr := strconv.Atoi(v)
		if perr != nil || secs <= 0 {
			log.Printf("Warning: invalid LIA_INACTIVITY_SECONDS=%q, using default", v)
		} else {
			inactivity = time.Duration(secs) * time.Second
		}
	}

	tts := true
	if v := os.Getenv("LIA_TTS_ENABLED"); v != "" {
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			log.Printf("Warning: invalid LIA_TTS_ENABLED=%q, using default", v)
		} else {
			tts = b
		}
	}

	log.Printf("config: LIA_BACKEND_URL=%s HTTP_ADDRESS=%s", backend, addr)
	return Config{
		BackendURL:        backend,
		HTTPAddress:       addr,
		InactivityTimeout: inactivity,
		TTSEnabled:        tts,
	}
}
