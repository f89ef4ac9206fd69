package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Type granularidad del reporte; define también los buckets del gráfico.
type Type string

const (
	TypeDaily   Type = "daily"   // 24 buckets por hora
	TypeWeekly  Type = "weekly"  // 7 buckets domingo..sábado
	TypeMonthly Type = "monthly" // un bucket por día del mes
	TypeYearly  Type = "yearly"  // 12 buckets por mes
)

// ParseType valida el tipo de reporte. Vacío equivale a daily.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case "":
		return TypeDaily, nil
	case TypeDaily, TypeWeekly, TypeMonthly, TypeYearly:
		return Type(s), nil
	}
	return "", fmt.Errorf("tipo de reporte desconocido: %q", s)
}

var (
	weekdayNames = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}
	monthNames   = [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
)

// Bucket acumulado de ingresos y utilidad de un slot del gráfico.
type Bucket struct {
	Name    string
	Revenue decimal.Decimal
	Profit  decimal.Decimal
}

// Series secuencia fija de buckets para un tipo de reporte.
type Series struct {
	typ     Type
	loc     *time.Location
	buckets []Bucket
}

// NewSeries crea los buckets vacíos para el periodo [windowStart, windowEnd].
// loc es la zona horaria en la que se toma hora/día de cada factura.
//
// Para monthly la cantidad de días sale del mes de windowEnd. Si el periodo abarca
// más de un mes calendario se usan 31 buckets, para que ningún día quede sin slot.
func NewSeries(typ Type, windowStart, windowEnd time.Time, loc *time.Location) *Series {
	if loc == nil {
		loc = time.Local
	}
	var names []string
	switch typ {
	case TypeWeekly:
		names = weekdayNames[:]
	case TypeMonthly:
		names = make([]string, monthDays(windowStart.In(loc), windowEnd.In(loc), loc))
		for d := range names {
			names[d] = strconv.Itoa(d + 1)
		}
	case TypeYearly:
		names = monthNames[:]
	default:
		typ = TypeDaily
		names = make([]string, 24)
		for h := range names {
			names[h] = fmt.Sprintf("%02d:00", h)
		}
	}
	buckets := make([]Bucket, len(names))
	for i, n := range names {
		buckets[i] = Bucket{Name: n, Revenue: decimal.Zero, Profit: decimal.Zero}
	}
	return &Series{typ: typ, loc: loc, buckets: buckets}
}

// monthDays días del mes de end; 31 si start cae en otro mes.
func monthDays(start, end time.Time, loc *time.Location) int {
	if !start.IsZero() && (start.Year() != end.Year() || start.Month() != end.Month()) {
		return 31
	}
	return time.Date(end.Year(), end.Month()+1, 0, 0, 0, 0, 0, loc).Day()
}

// Add suma ingresos y utilidad en el bucket que corresponde a la fecha.
// Devuelve false si la fecha no cae en ningún bucket (fecha vacía o fuera de rango).
func (s *Series) Add(at time.Time, revenue, profit decimal.Decimal) bool {
	idx, ok := s.index(at)
	if !ok {
		return false
	}
	b := &s.buckets[idx]
	b.Revenue = b.Revenue.Add(revenue)
	b.Profit = b.Profit.Add(profit)
	return true
}

func (s *Series) index(at time.Time) (int, bool) {
	if at.IsZero() {
		return 0, false
	}
	t := at.In(s.loc)
	var idx int
	switch s.typ {
	case TypeWeekly:
		idx = int(t.Weekday())
	case TypeMonthly:
		idx = t.Day() - 1
	case TypeYearly:
		idx = int(t.Month()) - 1
	default:
		idx = t.Hour()
	}
	if idx < 0 || idx >= len(s.buckets) {
		return 0, false
	}
	return idx, true
}

// Buckets copia de los buckets en orden.
func (s *Series) Buckets() []Bucket {
	out := make([]Bucket, len(s.buckets))
	copy(out, s.buckets)
	return out
}
