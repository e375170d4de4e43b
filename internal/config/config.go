package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"PORT"`
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	FrontendURL  string `mapstructure:"FRONTEND_URL"`

	// AdminEmails is the single authorization source for the adjudication
	// endpoints. Every admin gate goes through auth.Service.IsAdmin; the
	// list is never duplicated elsewhere.
	AdminEmails []string `mapstructure:"ADMIN_EMAILS"`

	// Event envelope stamped onto every booking at creation.
	EventName     string `mapstructure:"EVENT_NAME"`
	EventCityCode string `mapstructure:"EVENT_CITY_CODE"`
	EventDate     string `mapstructure:"EVENT_DATE"`

	BookingRefPrefix string `mapstructure:"BOOKING_REF_PREFIX"`

	// AuthTimeout bounds identity lookups on the anonymous-capable
	// intake path. On timeout the caller proceeds as a guest.
	AuthTimeout time.Duration `mapstructure:"AUTH_TIMEOUT"`

	OAuthClientID     string `mapstructure:"OAUTH_CLIENT_ID"`
	OAuthClientSecret string `mapstructure:"OAUTH_CLIENT_SECRET"`
	OAuthAuthURL      string `mapstructure:"OAUTH_AUTH_URL"`
	OAuthTokenURL     string `mapstructure:"OAUTH_TOKEN_URL"`
	OAuthUserInfoURL  string `mapstructure:"OAUTH_USERINFO_URL"`
	OAuthRedirectURL  string `mapstructure:"OAUTH_REDIRECT_URL"`

	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "diplomates.db")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:3000/register")
	viper.SetDefault("ADMIN_EMAILS", []string{"admin@futurediplomates.com"})
	viper.SetDefault("EVENT_NAME", "Future Diplomats Cairo Edition 2026")
	viper.SetDefault("EVENT_CITY_CODE", "CAI")
	viper.SetDefault("EVENT_DATE", "2026-07-15")
	viper.SetDefault("BOOKING_REF_PREFIX", "FD-CAI26-")
	viper.SetDefault("AUTH_TIMEOUT", "3s")
	viper.SetDefault("OAUTH_REDIRECT_URL", "http://127.0.0.1:8080/auth/callback")

	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("ADMIN_EMAILS")
	viper.BindEnv("EVENT_NAME")
	viper.BindEnv("EVENT_CITY_CODE")
	viper.BindEnv("EVENT_DATE")
	viper.BindEnv("BOOKING_REF_PREFIX")
	viper.BindEnv("AUTH_TIMEOUT")
	viper.BindEnv("OAUTH_CLIENT_ID")
	viper.BindEnv("OAUTH_CLIENT_SECRET")
	viper.BindEnv("OAUTH_AUTH_URL")
	viper.BindEnv("OAUTH_TOKEN_URL")
	viper.BindEnv("OAUTH_USERINFO_URL")
	viper.BindEnv("OAUTH_REDIRECT_URL")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
