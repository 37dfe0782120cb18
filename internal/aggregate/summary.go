package aggregate

import (
	"github.com/diewo77/cobranzas/internal/models"
	"math"
	"time"
)

// Summary is the financial situation shape the remote service reports,
// recomputed here entirely from the local replica.
type Summary struct {
	TotalVencido            float64 `json:"total_vencido"`
	TotalPorVencer          float64 `json:"total_por_vencer"`
	TotalCreditos           float64 `json:"total_creditos"`
	TotalSinVencimiento     float64 `json:"total_sinvencimiento"`
	TotalNeto               float64 `json:"total_neto"`
	CantidadVencidos        int     `json:"cantidad_vencidos"`
	CantidadPorVencer       int     `json:"cantidad_por_vencer"`
	CantidadSinVencimiento  int     `json:"cantidad_sinvencimiento"`
	CantidadTotal           int     `json:"cantidad_total"`
	DiasPromedioVencimiento int     `json:"dias_promedio_vencimiento"`
	DiasPromedioTodos       int     `json:"dias_promedio_vencimiento_todos"`
	DiasTranscurridos       int     `json:"dias_transcurridos"`
	DiasFaltantes           int     `json:"dias_faltantes"`
}

// Summarize classifies a document set as of the given date.
//
// Rules per non-settled, non-voided document:
//   - credit notes carry no due date: abs(saldo) goes to total_sinvencimiento,
//     a negative saldo additionally counts abs into total_creditos. They join
//     the total count but contribute zero days to the averages.
//   - advances with negative saldo count abs into total_creditos and are then
//     classified by the ordinary due-date test like any other document.
//   - everything else: due date on or before asOf is overdue, later is
//     not-yet-due. A missing due date lands in the overdue bucket with a zero
//     day contribution so the totals identity still holds.
func Summarize(documents []models.Document, asOf time.Time) Summary {
	var sum Summary

	var overdueDays, upcomingDays int

	classify := func(d models.Document) {
		if d.DueDate.IsZero() {
			sum.TotalVencido += d.Balance
			sum.CantidadVencidos++
			return
		}
		days := d.DueDate.DaysSince(asOf)
		if days >= 0 {
			sum.TotalVencido += d.Balance
			sum.CantidadVencidos++
			overdueDays += days
		} else {
			sum.TotalPorVencer += d.Balance
			sum.CantidadPorVencer++
			upcomingDays += days
		}
	}

	for _, d := range documents {
		if d.Voided || d.Settled() {
			continue
		}
		switch d.Type {
		case models.TypeCreditNote:
			if d.Balance < 0 {
				sum.TotalCreditos += -d.Balance
			}
			sum.TotalSinVencimiento += math.Abs(d.Balance)
			sum.CantidadSinVencimiento++
		case models.TypeAdvance:
			if d.Balance < 0 {
				sum.TotalCreditos += -d.Balance
			}
			classify(d)
		default:
			classify(d)
		}
	}

	sum.TotalNeto = sum.TotalVencido + sum.TotalPorVencer - sum.TotalSinVencimiento
	sum.CantidadTotal = sum.CantidadVencidos + sum.CantidadPorVencer + sum.CantidadSinVencimiento

	if sum.CantidadVencidos > 0 {
		sum.DiasPromedioVencimiento = int(math.Round(float64(overdueDays) / float64(sum.CantidadVencidos)))
	}
	if sum.CantidadTotal > 0 {
		sum.DiasPromedioTodos = int(math.Round(float64(overdueDays+upcomingDays) / float64(sum.CantidadTotal)))
	}

	sum.DiasTranscurridos = asOf.Day()
	sum.DiasFaltantes = daysInMonth(asOf) - asOf.Day()
	return sum
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
