package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	MongoURI       string
	PostgresURI    string
	RedisURI       string
	Port           string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	Environment    string   // ENV: production, development, etc.

	// Media storage. When Cloudinary credentials are set, uploads go there;
	// otherwise files are embedded in-band as data URIs.
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	MaxUploadBytes      int64

	// Speech synthesis. ElevenLabs is used when an API key is present,
	// otherwise a local synthesizer is probed at startup.
	ElevenLabsAPIKey string
	ElevenLabsVoice  string
	ElevenLabsModel  string
}

const defaultMaxUploadBytes = 5 * 1024 * 1024 // 5MB cap on embedded media

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:5173"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}

	maxUpload := int64(defaultMaxUploadBytes)
	if v := getEnv("MAX_UPLOAD_BYTES", ""); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil && parsed > 0 {
			maxUpload = parsed
		}
	}

	return &Config{
		MongoURI:            getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/soulspace")),
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/soulspace?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:                getEnv("PORT", "8080"),
		AllowedOrigins:      allowedOrigins,
		Environment:         env,
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		MaxUploadBytes:      maxUpload,
		ElevenLabsAPIKey:    getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoice:     getEnv("ELEVENLABS_VOICE", ""),
		ElevenLabsModel:     getEnv("ELEVENLABS_MODEL", ""),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
