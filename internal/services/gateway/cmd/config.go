package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBPath    string
	TimeoutMs int

	OWMAPIKey string

	AdvisorEndpoint string
	AdvisorAPIKey   string

	ProbeURL string

	// MQTT broker for scheme notifications (optional; empty host disables)
	MQTTHost string
	MQTTPort int
	MQTTUser string
	MQTTPass string

	// Influx history sink (optional; empty token disables)
	InfluxURL    string
	InfluxToken  string
	InfluxOrg    string
	InfluxBucket string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func loadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("cfg: no .env file loaded: %v", err)
	}

	return Config{
		Port:      getenv("PORT", "8080"),
		DBPath:    getenv("DB_PATH", "cropsaarthi.db"),
		TimeoutMs: getenvInt("TIMEOUT_MS", 5000),

		OWMAPIKey: getenv("OWM_API_KEY", ""),

		AdvisorEndpoint: getenv("ADVISOR_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta/models/gemini-pro:generateContent"),
		AdvisorAPIKey:   getenv("ADVISOR_API_KEY", ""),

		ProbeURL: getenv("PROBE_URL", ""),

		MQTTHost: getenv("MQTT_HOST", ""),
		MQTTPort: getenvInt("MQTT_PORT", 1883),
		MQTTUser: getenv("MQTT_USER", ""),
		MQTTPass: getenv("MQTT_PASSWORD", ""),

		InfluxURL:    getenv("INFLUX_URL", "http://influxdb:8086"),
		InfluxToken:  getenv("INFLUX_TOKEN", ""),
		InfluxOrg:    getenv("INFLUX_ORG", "cropsaarthi"),
		InfluxBucket: getenv("INFLUX_BUCKET", "advice"),
	}
}
