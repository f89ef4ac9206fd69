package report

import (
	"fmt"
	"time"

	"github.com/jhoicas/pos-reports/internal/application/dto"
	"github.com/jhoicas/pos-reports/internal/domain"
	domreport "github.com/jhoicas/pos-reports/internal/domain/report"
)

const dayLayout = "2006-01-02"

// Window periodo del reporte, inclusivo en ambos extremos.
type Window struct {
	Type  domreport.Type
	Start time.Time
	End   time.Time
}

// Contains indica si t cae dentro del periodo.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ResolveWindow convierte los parámetros de la petición en un periodo concreto.
//
//   - startDate/endDate (YYYY-MM-DD) ganan si vienen; el fin incluye todo el día.
//     Sin startDate se usa el primer día del mes de endDate; sin endDate, hoy.
//   - type=daily   date=YYYY-MM-DD → ese día.
//   - type=weekly  date=YYYY-MM-DD → semana domingo..sábado que contiene la fecha.
//   - type=monthly date=YYYY-MM    → primer a último día del mes.
//   - type=yearly  date=YYYY       → 1 de enero a 31 de diciembre.
//
// Sin date se toma el periodo actual del tipo. Los errores envuelven domain.ErrInvalidInput.
func ResolveWindow(req dto.ReportRequest, now time.Time, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)

	typ, err := domreport.ParseType(req.Type)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	if req.StartDate != "" || req.EndDate != "" {
		return explicitWindow(typ, req.StartDate, req.EndDate, now, loc)
	}

	switch typ {
	case domreport.TypeWeekly:
		day, err := parseOrDefault(req.Date, now, loc, dayLayout)
		if err != nil {
			return Window{}, err
		}
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return Window{Type: typ, Start: start, End: endOfDay(start.AddDate(0, 0, 6))}, nil
	case domreport.TypeMonthly:
		day, err := parseOrDefault(req.Date, now, loc, "2006-01", dayLayout)
		if err != nil {
			return Window{}, err
		}
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, loc)
		return Window{Type: typ, Start: start, End: endOfDay(start.AddDate(0, 1, -1))}, nil
	case domreport.TypeYearly:
		day, err := parseOrDefault(req.Date, now, loc, "2006", "2006-01", dayLayout)
		if err != nil {
			return Window{}, err
		}
		start := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return Window{Type: typ, Start: start, End: endOfDay(time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, loc))}, nil
	default:
		day, err := parseOrDefault(req.Date, now, loc, dayLayout)
		if err != nil {
			return Window{}, err
		}
		return Window{Type: typ, Start: day, End: endOfDay(day)}, nil
	}
}

func explicitWindow(typ domreport.Type, startStr, endStr string, now time.Time, loc *time.Location) (Window, error) {
	end := startOfDay(now)
	if endStr != "" {
		t, err := time.ParseInLocation(dayLayout, endStr, loc)
		if err != nil {
			return Window{}, fmt.Errorf("%w: endDate inválido: %v", domain.ErrInvalidInput, err)
		}
		end = t
	}
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, loc)
	if startStr != "" {
		t, err := time.ParseInLocation(dayLayout, startStr, loc)
		if err != nil {
			return Window{}, fmt.Errorf("%w: startDate inválido: %v", domain.ErrInvalidInput, err)
		}
		start = t
	}
	if start.After(end) {
		return Window{}, fmt.Errorf("%w: startDate no puede ser posterior a endDate", domain.ErrInvalidInput)
	}
	return Window{Type: typ, Start: start, End: endOfDay(end)}, nil
}

// parseOrDefault interpreta date con el primer layout que funcione; vacío = hoy.
func parseOrDefault(date string, now time.Time, loc *time.Location, layouts ...string) (time.Time, error) {
	if date == "" {
		return startOfDay(now), nil
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, date, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q no coincide con el formato %s", domain.ErrInvalidInput, date, layouts[0])
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// endOfDay 23:59:59.999999999 del día de t.
func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
