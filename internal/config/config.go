package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Builder struct {
		DebounceInterval time.Duration `yaml:"debounce_interval" default:"500ms"`
		MaxSessions      int           `yaml:"max_sessions" default:"1000"`
		SessionMaxAge    time.Duration `yaml:"session_max_age" default:"24h"`
		CleanupInterval  time.Duration `yaml:"cleanup_interval" default:"1h"`
	} `yaml:"builder"`

	Export struct {
		PageWidthMM  float64       `yaml:"page_width_mm" default:"210"`
		PageHeightMM float64       `yaml:"page_height_mm" default:"297"`
		CaptureScale float64       `yaml:"capture_scale" default:"2"`
		RateLimit    int           `yaml:"rate_limit" default:"30"` // requests per minute
		Timeout      time.Duration `yaml:"timeout" default:"2m"`
		Preview      struct {
			BaseURL string `yaml:"base_url" default:"http://localhost:3000/preview"`
			Token   string `yaml:"token"`
		} `yaml:"preview"`
	} `yaml:"export"`

	Browser struct {
		HeadlessMode bool   `yaml:"headless_mode" default:"true"`
		MaxInstances int    `yaml:"max_instances" default:"3"`
		UserAgent    string `yaml:"user_agent"`
	} `yaml:"browser"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Remote struct {
		BaseURL string        `yaml:"base_url" default:"http://localhost:3000"`
		Timeout time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"remote"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Builder.DebounceInterval = 500 * time.Millisecond
	config.Builder.MaxSessions = 1000
	config.Builder.SessionMaxAge = 24 * time.Hour
	config.Builder.CleanupInterval = 1 * time.Hour

	config.Export.PageWidthMM = 210
	config.Export.PageHeightMM = 297
	config.Export.CaptureScale = 2
	config.Export.RateLimit = 30
	config.Export.Timeout = 2 * time.Minute
	config.Export.Preview.BaseURL = "http://localhost:3000/preview"

	config.Browser.HeadlessMode = true
	config.Browser.MaxInstances = 3

	config.CORS.AllowedOrigins = []string{"*"}

	config.Remote.BaseURL = "http://localhost:3000"
	config.Remote.Timeout = 30 * time.Second

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if debounce := os.Getenv("BUILDER_DEBOUNCE_INTERVAL"); debounce != "" {
		if d, err := time.ParseDuration(debounce); err == nil {
			c.Builder.DebounceInterval = d
		}
	}

	if maxSessions := os.Getenv("BUILDER_MAX_SESSIONS"); maxSessions != "" {
		if n, err := strconv.Atoi(maxSessions); err == nil {
			c.Builder.MaxSessions = n
		}
	}

	if maxAge := os.Getenv("BUILDER_SESSION_MAX_AGE"); maxAge != "" {
		if d, err := time.ParseDuration(maxAge); err == nil {
			c.Builder.SessionMaxAge = d
		}
	}

	if previewURL := os.Getenv("EXPORT_PREVIEW_URL"); previewURL != "" {
		c.Export.Preview.BaseURL = previewURL
	}

	if previewToken := os.Getenv("EXPORT_PREVIEW_TOKEN"); previewToken != "" {
		c.Export.Preview.Token = previewToken
	}

	if rateLimit := os.Getenv("EXPORT_RATE_LIMIT"); rateLimit != "" {
		if n, err := strconv.Atoi(rateLimit); err == nil {
			c.Export.RateLimit = n
		}
	}

	if headless := os.Getenv("BROWSER_HEADLESS"); headless != "" {
		c.Browser.HeadlessMode = headless == "true" || headless == "1"
	}

	if maxInstances := os.Getenv("BROWSER_MAX_INSTANCES"); maxInstances != "" {
		if n, err := strconv.Atoi(maxInstances); err == nil {
			c.Browser.MaxInstances = n
		}
	}

	if userAgent := os.Getenv("BROWSER_USER_AGENT"); userAgent != "" {
		c.Browser.UserAgent = userAgent
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		c.CORS.AllowedOrigins = c.CORS.AllowedOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				c.CORS.AllowedOrigins = append(c.CORS.AllowedOrigins, p)
			}
		}
	}

	if baseURL := os.Getenv("REMOTE_BASE_URL"); baseURL != "" {
		c.Remote.BaseURL = baseURL
	}

	if timeout := os.Getenv("REMOTE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Remote.Timeout = d
		}
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}
}
