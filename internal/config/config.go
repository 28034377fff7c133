package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrConfiguration se devuelve cuando falta una credencial obligatoria
var ErrConfiguration = errors.New("configuración inválida")

// Config contiene toda la configuración del sistema
type Config struct {
	Zendesk ZendeskConfig
	Logging LoggingConfig
	Discord DiscordConfig
}

// ZendeskConfig configuración de conexión a Zendesk
type ZendeskConfig struct {
	Email     string
	APIToken  string
	Subdomain string
	BaseURL   string // Opcional, por defecto https://<subdomain>.zendesk.com
}

// LoggingConfig configuración de logs
type LoggingConfig struct {
	Level  string
	Format string // text o json
}

// DiscordConfig configuración del bot de Discord (opcional)
type DiscordConfig struct {
	BotToken  string
	ChannelID string
}

// Enabled indica si hay datos suficientes para notificar por Discord
func (d DiscordConfig) Enabled() bool {
	return d.BotToken != "" && d.ChannelID != ""
}

// URL devuelve la URL base de la API de Zendesk
func (z ZendeskConfig) URL() string {
	if z.BaseURL != "" {
		return strings.TrimRight(z.BaseURL, "/")
	}
	return fmt.Sprintf("https://%s.zendesk.com", z.Subdomain)
}

// Load carga la configuración desde variables de entorno
func Load() (*Config, error) {
	// Cargar archivo .env si existe
	godotenv.Load()

	config := &Config{
		Zendesk: ZendeskConfig{
			Email:     os.Getenv("ZENDESK_EMAIL"),
			APIToken:  os.Getenv("ZENDESK_TOKEN"),
			Subdomain: os.Getenv("ZENDESK_SUBDOMAIN"),
			BaseURL:   os.Getenv("ZENDESK_BASE_URL"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
		Discord: DiscordConfig{
			BotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
			ChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
		},
	}

	return config, nil
}

// Validate verifica que estén las credenciales de Zendesk
func (c *Config) Validate() error {
	var missing []string
	if c.Zendesk.Email == "" {
		missing = append(missing, "ZENDESK_EMAIL")
	}
	if c.Zendesk.APIToken == "" {
		missing = append(missing, "ZENDESK_TOKEN")
	}
	if c.Zendesk.Subdomain == "" {
		missing = append(missing, "ZENDESK_SUBDOMAIN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: faltan variables de entorno %s", ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
