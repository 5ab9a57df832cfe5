package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Env          string
	Port         string
	DBDriver     string // sqlite | pgx
	DBDSN        string
	LogFile      string
	LogLevel     string
	TemplatesDir string
	StaticDir    string
	CookieSecure bool
	ShopName     string

	Bootstrap AdminBootstrap
}

// AdminBootstrap describes the administrator provisioned at startup when the
// store has none. Empty Username or Password disables provisioning.
type AdminBootstrap struct {
	Name     string
	Username string
	Email    string
	Password string
}

func (b AdminBootstrap) Enabled() bool {
	return strings.TrimSpace(b.Username) != "" && b.Password != ""
}

func (c Config) Addr() string { return ":" + c.Port }

func (c Config) IsProduction() bool { return c.Env == "production" }

// Load reads settings from the environment, optionally seeded by a .env or
// config.env file in the working directory. Environment variables win.
func Load() Config {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return Config{
		Env:          v.GetString("APP_ENV"),
		Port:         v.GetString("PORT"),
		DBDriver:     strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:        v.GetString("DB_DSN"), // sqlite file in project root by default
		LogFile:      v.GetString("LOG_FILE"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		TemplatesDir: v.GetString("TEMPLATES_DIR"),
		StaticDir:    v.GetString("STATIC_DIR"),
		CookieSecure: v.GetBool("COOKIE_SECURE"),
		ShopName:     v.GetString("SHOP_NAME"),
		Bootstrap: AdminBootstrap{
			Name:     v.GetString("BOOTSTRAP_ADMIN_NAME"),
			Username: v.GetString("BOOTSTRAP_ADMIN_USERNAME"),
			Email:    v.GetString("BOOTSTRAP_ADMIN_EMAIL"),
			Password: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "tienda.db")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("STATIC_DIR", "./web/static")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("SHOP_NAME", "Tienda")
	v.SetDefault("BOOTSTRAP_ADMIN_NAME", "Administrador")
	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "admin@tienda.local")
}
