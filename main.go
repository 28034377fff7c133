package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/cli/go-gh/v2/pkg/term"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/PhelGc/furina-latency/internal/config"
	"github.com/PhelGc/furina-latency/internal/discord"
	"github.com/PhelGc/furina-latency/internal/evaluator"
	"github.com/PhelGc/furina-latency/internal/report"
	"github.com/PhelGc/furina-latency/internal/zendesk"
)

const usage = `Genera un CSV con los tiempos de respuesta de los agentes en un ticket de Zendesk.

Uso:
  furina-latency [opciones] <ticket_url>

Ejemplo:
  furina-latency https://foobar.zendesk.com/agent/tickets/123   # genera 123.csv

Variables de entorno requeridas: ZENDESK_EMAIL, ZENDESK_TOKEN, ZENDESK_SUBDOMAIN

Opciones:
`

type options struct {
	ticketURL string
	output    string
	verbose   bool
	quiet     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	// Cargar configuración
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := newLogger(cfg.Logging, opts.verbose, stderr)

	ticket, err := zendesk.ParseTicketURL(opts.ticketURL)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = ticket.DefaultOutput()
	}
	if err := report.CheckOutputPath(out); err != nil {
		return err
	}

	color.New(color.FgYellow).Fprintf(stdout, "Evaluating %s\n", opts.ticketURL)

	start := time.Now()
	client := zendesk.NewClient(cfg.Zendesk, log)
	evals, err := evaluator.Evaluate(ctx, client, ticket, log)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(stdout, "Evaluated %s\n", opts.ticketURL)
	log.WithFields(logrus.Fields{
		"ticket_id":   ticket.ID,
		"comentarios": len(evals),
		"duracion":    time.Since(start).Round(time.Millisecond).String(),
	}).Info("Ticket evaluado")

	if err := report.WriteCSV(out, evals); err != nil {
		return err
	}

	if !opts.quiet {
		t := term.FromEnv()
		width, _, _ := t.Size()
		if err := report.PrintSummary(stdout, evals, t.IsTerminalOutput(), width); err != nil {
			log.WithError(err).Warn("No se pudo imprimir el resumen")
		}
	}

	if cfg.Discord.Enabled() {
		notify(cfg.Discord, &discord.Summary{
			TicketID:  ticket.ID,
			TicketURL: opts.ticketURL,
			Output:    out,
			Stats:     evaluator.Summarize(evals),
		}, log)
	}

	color.New(color.FgGreen).Fprintf(stdout, "Generated evaluated output: %s\n", out)
	return nil
}

// parseArgs acepta las opciones antes o después de la URL
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("furina-latency", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.output, "output", "", "Archivo CSV de salida (por defecto <ticket_id>.csv)")
	fs.StringVar(&opts.output, "o", "", "Archivo CSV de salida (alias de --output)")
	fs.BoolVar(&opts.verbose, "v", false, "Logs de depuración")
	fs.BoolVar(&opts.quiet, "q", false, "No imprimir la tabla de resumen")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return opts, fmt.Errorf("%w: falta la URL del ticket", zendesk.ErrMalformedInput)
	}
	opts.ticketURL = fs.Arg(0)

	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("%w: argumentos de más: %v", zendesk.ErrMalformedInput, fs.Args())
	}
	return opts, nil
}

func newLogger(cfg config.LoggingConfig, verbose bool, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{TimestampFormat: time.RFC3339, FullTimestamp: true})
	}
	return log
}

// notify manda el resumen a Discord; un fallo acá no invalida el reporte
func notify(cfg config.DiscordConfig, summary *discord.Summary, log logrus.FieldLogger) {
	client, err := discord.NewClient(&discord.Config{BotToken: cfg.BotToken, ChannelID: cfg.ChannelID})
	if err != nil {
		log.WithError(err).Warn("No se pudo crear el cliente de Discord")
		return
	}
	defer client.Close()

	messageID, err := client.SendReportSummary(summary)
	if err != nil {
		log.WithError(err).Warn("No se pudo notificar por Discord")
		return
	}
	log.WithField("message_id", messageID).Info("Resumen enviado a Discord")
}
