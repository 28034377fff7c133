package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/dustin/go-humanize"

	"github.com/PhelGc/furina-latency/internal/evaluator"
)

// PrintSummary imprime una tabla con los tiempos de respuesta medidos.
// Sin TTY se imprime en TSV y sin encabezado.
func PrintSummary(w io.Writer, evals []evaluator.Evaluation, isTTY bool, width int) error {
	stats := evaluator.Summarize(evals)
	if stats.Measured == 0 {
		_, err := fmt.Fprintf(w, "Sin tiempos de respuesta medidos (%d comentarios públicos)\n", stats.Responses)
		return err
	}

	tp := tableprinter.New(w, isTTY, width)
	tp.AddHeader([]string{"RESPONDIDO", "AGENTE", "TIEMPO", "ESPERA", "FINES DE SEMANA"})
	for _, e := range evals {
		if e.TimeTaken == nil {
			continue
		}
		tp.AddField(e.Response.RespondedAt().Format("2006-01-02 15:04"))
		tp.AddField(e.Response.Author().Email)
		tp.AddField(e.Record()["response time"])
		tp.AddField(Waited(*e.TimeTaken))
		tp.AddField(strings.Join(e.TimeTaken.WeekendDates(), ","))
		tp.EndRow()
	}
	if err := tp.Render(); err != nil {
		return fmt.Errorf("error imprimiendo resumen: %w", err)
	}

	_, err := fmt.Fprintf(w, "%d mediciones en %d comentarios públicos, promedio %s\n",
		stats.Measured, stats.Responses, stats.Average())
	return err
}

// Waited espera en lenguaje natural ("2 days", "1 hour")
func Waited(rt evaluator.ResponseTime) string {
	return strings.TrimSpace(humanize.RelTime(rt.AskedAt(), rt.AnsweredAt(), "", ""))
}
