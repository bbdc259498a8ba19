package config

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Env  string `envconfig:"APP_ENV" default:"development"`
	Port string `envconfig:"PORT" default:"5000"`

	MongoURI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"sehat"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"10m"`

	JWTSecret   string        `envconfig:"JWT_SECRET" required:"true"`
	TokenExpiry time.Duration `envconfig:"TOKEN_EXPIRY" default:"360h"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173,http://127.0.0.1:3000"`
	UploadDir      string   `envconfig:"UPLOAD_DIR" default:"uploads"`

	GoogleAPIKey string  `envconfig:"GOOGLE_API_KEY"`
	GeminiModel  string  `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	AIRateLimit  float64 `envconfig:"AI_RATE_LIMIT" default:"2"`
	AIRateBurst  int     `envconfig:"AI_RATE_BURST" default:"5"`

	MapsAPIKey     string  `envconfig:"GOOGLE_MAPS_API_KEY"`
	UnsafeRadius   float64 `envconfig:"UNSAFE_RADIUS_METERS" default:"50"`
	BufferDistance float64 `envconfig:"BUFFER_DISTANCE_METERS" default:"50"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser     string `envconfig:"SMTP_USER"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	MailFrom     string `envconfig:"MAIL_FROM"`

	VaultBackend string `envconfig:"VAULT_BACKEND" default:"pinata"`
	PinataJWT    string `envconfig:"PINATA_JWT"`
	PinataAPI    string `envconfig:"PINATA_API_URL" default:"https://api.pinata.cloud"`
	PinataGW     string `envconfig:"PINATA_GATEWAY_URL" default:"https://gateway.pinata.cloud/ipfs/"`
	S3Bucket     string `envconfig:"S3_BUCKET"`
	S3Region     string `envconfig:"S3_REGION" default:"ap-south-1"`
	S3PublicURL  string `envconfig:"S3_PUBLIC_URL"`

	SigningKeyPath string `envconfig:"PRESCRIPTION_SIGNING_KEY"`

	ReminderSchedule string `envconfig:"REMINDER_SCHEDULE" default:"0 8 * * *"`
	SeedDataPath     string `envconfig:"SEED_DATA_PATH"`
}

var (
	cfg  *Config
	once sync.Once
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, reading configuration from environment")
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return nil, errors.New("envconfig: JWT_SECRET must not be empty")
	}
	return &c, nil
}

// Get returns the process-wide configuration, loading it on first use.
func Get() *Config {
	once.Do(func() {
		c, err := Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Error in loading the configuration")
		}
		cfg = c
	})
	return cfg
}

// Set replaces the process-wide configuration; tests use it to avoid the
// environment.
func Set(c *Config) {
	once.Do(func() {})
	cfg = c
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
