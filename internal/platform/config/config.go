package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Funds-sufficiency policy for the purchase flow. The original sources forked
// into a blocking and a warning variant; here it is a named configuration flag.
const (
	FundsPolicyBlock = "block"
	FundsPolicyWarn  = "warn"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Local document store
	DataPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Remote mirror selection: "postgres", "gist" or "" (disabled)
	MirrorKind      string
	MirrorPGURL     string
	MirrorGistToken string
	MirrorGistID    string
	SyncDebounce    time.Duration

	PurchaseFundsPolicy string

	LoginRateLimit string
	CORSOrigins    []string
	PosthogAPIKey  string

	// Gemini API key for the business insights endpoint; empty disables it.
	GeminiAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DATA_PATH", "xaysimo.db")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "xaysimo-erp")
	viper.SetDefault("MIRROR_KIND", "")
	viper.SetDefault("MIRROR_PG_URL", "")
	viper.SetDefault("MIRROR_GIST_TOKEN", "")
	viper.SetDefault("MIRROR_GIST_ID", "")
	viper.SetDefault("SYNC_DEBOUNCE", "5s")
	viper.SetDefault("PURCHASE_FUNDS_POLICY", FundsPolicyBlock)
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("GEMINI_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.DataPath = viper.GetString("DATA_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.MirrorKind = strings.ToLower(viper.GetString("MIRROR_KIND"))
	switch cfg.MirrorKind {
	case "", "postgres", "gist":
	default:
		log.Printf("Warning: Unknown MIRROR_KIND '%s'. Remote mirroring disabled.\n", cfg.MirrorKind)
		cfg.MirrorKind = ""
	}
	cfg.MirrorPGURL = viper.GetString("MIRROR_PG_URL")
	cfg.MirrorGistToken = viper.GetString("MIRROR_GIST_TOKEN")
	cfg.MirrorGistID = viper.GetString("MIRROR_GIST_ID")
	if cfg.MirrorKind == "postgres" && cfg.MirrorPGURL == "" {
		log.Println("Warning: MIRROR_KIND is postgres but MIRROR_PG_URL is not set. Remote mirroring disabled.")
		cfg.MirrorKind = ""
	}
	if cfg.MirrorKind == "gist" && cfg.MirrorGistToken == "" {
		log.Println("Warning: MIRROR_KIND is gist but MIRROR_GIST_TOKEN is not set. Remote mirroring disabled.")
		cfg.MirrorKind = ""
	}

	syncDebounceStr := viper.GetString("SYNC_DEBOUNCE")
	syncDebounce, err := time.ParseDuration(syncDebounceStr)
	if err != nil || syncDebounce <= 0 {
		syncDebounce = 5 * time.Second
		log.Printf("Warning: Invalid value for SYNC_DEBOUNCE ('%s'). Defaulting to %s.\n", syncDebounceStr, syncDebounce)
	}
	cfg.SyncDebounce = syncDebounce

	cfg.PurchaseFundsPolicy = strings.ToLower(viper.GetString("PURCHASE_FUNDS_POLICY"))
	if cfg.PurchaseFundsPolicy != FundsPolicyBlock && cfg.PurchaseFundsPolicy != FundsPolicyWarn {
		log.Printf("Warning: Invalid value for PURCHASE_FUNDS_POLICY ('%s'). Defaulting to %s.\n", cfg.PurchaseFundsPolicy, FundsPolicyBlock)
		cfg.PurchaseFundsPolicy = FundsPolicyBlock
	}

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.CORSOrigins = strings.Split(viper.GetString("CORS_ORIGINS"), ",")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")

	return cfg, nil
}
