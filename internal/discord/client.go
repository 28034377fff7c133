package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/PhelGc/furina-latency/internal/evaluator"
	"github.com/PhelGc/furina-latency/internal/report"
)

// sender es la parte de discordgo.Session que se usa
type sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Client struct {
	session sender
	config  *Config
	close   func() error
}

type Config struct {
	BotToken  string
	ChannelID string
}

// Summary datos del reporte que se notifican
type Summary struct {
	TicketID  int64
	TicketURL string
	Output    string
	Stats     evaluator.Stats
}

func NewClient(config *Config) (*Client, error) {
	session, err := discordgo.New("Bot " + config.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creando sesión Discord: %v", err)
	}

	return &Client{
		session: session,
		config:  config,
		close:   session.Close,
	}, nil
}

// SendReportSummary envía el resumen del ticket evaluado al canal configurado
func (c *Client) SendReportSummary(summary *Summary) (string, error) {
	embed := c.buildSummaryEmbed(summary)

	message, err := c.session.ChannelMessageSendEmbed(c.config.ChannelID, embed)
	if err != nil {
		return "", fmt.Errorf("error enviando mensaje a Discord: %v", err)
	}

	return message.ID, nil
}

// buildSummaryEmbed construye el embed con el resumen de tiempos de respuesta
func (c *Client) buildSummaryEmbed(summary *Summary) *discordgo.MessageEmbed {
	stats := summary.Stats

	// Color según la peor espera
	color := 0x2ECC71 // Verde
	longest := "-"
	if stats.Longest != nil {
		longest = report.Waited(*stats.Longest)
		switch d := stats.Longest.Duration(); {
		case d >= 48*time.Hour:
			color = 0xE74C3C // Rojo
		case d >= 24*time.Hour:
			color = 0xF39C12 // Naranja
		}
	}

	average := "-"
	if stats.Measured > 0 {
		average = stats.Average().Round(time.Second).String()
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Ticket #%d - tiempos de respuesta", summary.TicketID),
		URL:   summary.TicketURL,
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Comentarios",
				Value:  fmt.Sprintf("%d", stats.Responses),
				Inline: true,
			},
			{
				Name:   "Mediciones",
				Value:  fmt.Sprintf("%d", stats.Measured),
				Inline: true,
			},
			{
				Name:   "Promedio",
				Value:  average,
				Inline: true,
			},
			{
				Name:   "Mayor espera",
				Value:  longest,
				Inline: true,
			},
			{
				Name:   "Reporte",
				Value:  summary.Output,
				Inline: false,
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Furina Latency - Notificación automatizada",
		},
	}
}

// Close cierra la conexión con Discord
func (c *Client) Close() {
	if c.close != nil {
		c.close()
	}
}
