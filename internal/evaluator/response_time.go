package evaluator

import (
	"fmt"
	"iter"
	"time"
)

// ResponseTime es la espera entre la consulta del cliente y la respuesta del agente
type ResponseTime struct {
	askedAt    time.Time
	answeredAt time.Time
	duration   time.Duration
}

// NewResponseTime calcula la duración al construir; no se valida el orden
func NewResponseTime(askedAt, answeredAt time.Time) ResponseTime {
	return ResponseTime{
		askedAt:    askedAt,
		answeredAt: answeredAt,
		duration:   answeredAt.Sub(askedAt),
	}
}

// AskedAt momento de la consulta del cliente
func (rt ResponseTime) AskedAt() time.Time { return rt.askedAt }

// AnsweredAt momento de la respuesta del agente
func (rt ResponseTime) AnsweredAt() time.Time { return rt.answeredAt }

// Duration espera entre consulta y respuesta, puede ser negativa
func (rt ResponseTime) Duration() time.Duration { return rt.duration }

// Formula "<respondido> - <consultado> = <duración>"
func (rt ResponseTime) Formula() string {
	return fmt.Sprintf("%s - %s = %s",
		formatTimestamp(rt.answeredAt), formatTimestamp(rt.askedAt), formatDuration(rt.duration))
}

func (rt ResponseTime) String() string {
	return rt.Formula()
}

// Weekends recorre duration.days + 1 días a partir de la fecha de la consulta
// y devuelve los que caen en sábado o domingo. Con duración negativa no hay
// días. Se puede recorrer varias veces.
func (rt ResponseTime) Weekends() iter.Seq[time.Time] {
	start := truncateDay(rt.askedAt)
	days := 0
	if rt.duration >= 0 {
		days = int(rt.duration/(24*time.Hour)) + 1
	}

	return func(yield func(time.Time) bool) {
		for i := range days {
			day := start.AddDate(0, 0, i)
			if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
				continue
			}
			if !yield(day) {
				return
			}
		}
	}
}

// WeekendDates fechas de fin de semana en formato 2006-01-02
func (rt ResponseTime) WeekendDates() []string {
	var dates []string
	for day := range rt.Weekends() {
		dates = append(dates, day.Format("2006-01-02"))
	}
	return dates
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// formatDuration horas totales en formato H:MM:SS (63:00:00 son 2 días y 15 horas)
func formatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	d = d.Truncate(time.Microsecond)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second

	out := fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	if us := d / time.Microsecond; us > 0 {
		out += fmt.Sprintf(".%06d", us)
	}
	return out
}
