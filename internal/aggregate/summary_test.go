package aggregate

import (
	"github.com/diewo77/cobranzas/internal/models"
	"testing"
	"time"
)

var asOf = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

func doc(typ string, due models.Date, balance float64) models.Document {
	return models.Document{Type: typ, DueDate: due, Balance: balance, IssueDate: models.NewDate(2025, 3, 1)}
}

func TestSummarize_MixedPortfolio(t *testing.T) {
	docs := []models.Document{
		doc(models.TypeInvoice, models.NewDate(2025, 3, 5), 500),  // overdue 10 days
		doc(models.TypeInvoice, models.NewDate(2025, 3, 25), 300), // due in 10 days
		doc(models.TypeCreditNote, models.Date{}, -200),
	}
	sum := Summarize(docs, asOf)

	if sum.TotalVencido != 500 || sum.CantidadVencidos != 1 {
		t.Errorf("vencido = %v/%d, want 500/1", sum.TotalVencido, sum.CantidadVencidos)
	}
	if sum.TotalPorVencer != 300 || sum.CantidadPorVencer != 1 {
		t.Errorf("por_vencer = %v/%d, want 300/1", sum.TotalPorVencer, sum.CantidadPorVencer)
	}
	if sum.TotalCreditos != 200 {
		t.Errorf("creditos = %v, want 200", sum.TotalCreditos)
	}
	if sum.TotalSinVencimiento != 200 || sum.CantidadSinVencimiento != 1 {
		t.Errorf("sinvencimiento = %v/%d, want 200/1", sum.TotalSinVencimiento, sum.CantidadSinVencimiento)
	}
	if sum.TotalNeto != 600 {
		t.Errorf("neto = %v, want 600", sum.TotalNeto)
	}
	if sum.CantidadTotal != 3 {
		t.Errorf("cantidad_total = %d, want 3", sum.CantidadTotal)
	}
}

func TestSummarize_SkipsVoidedAndSettled(t *testing.T) {
	voided := doc(models.TypeInvoice, models.NewDate(2025, 3, 5), 500)
	voided.Voided = true
	settled := doc(models.TypeInvoice, models.NewDate(2025, 3, 5), 0)

	sum := Summarize([]models.Document{voided, settled}, asOf)
	if sum.CantidadTotal != 0 || sum.TotalNeto != 0 {
		t.Errorf("expected empty summary, got %+v", sum)
	}
}

func TestSummarize_DueTodayIsOverdue(t *testing.T) {
	sum := Summarize([]models.Document{doc(models.TypeInvoice, models.NewDate(2025, 3, 15), 100)}, asOf)
	if sum.CantidadVencidos != 1 || sum.TotalVencido != 100 {
		t.Errorf("document due today must count as overdue, got %+v", sum)
	}
}

func TestSummarize_MissingDueDateIsOverdueZeroDays(t *testing.T) {
	sum := Summarize([]models.Document{doc(models.TypeDebitNote, models.Date{}, 100)}, asOf)
	if sum.CantidadVencidos != 1 || sum.TotalVencido != 100 {
		t.Errorf("missing due date lands in overdue, got %+v", sum)
	}
	if sum.DiasPromedioVencimiento != 0 {
		t.Errorf("missing due date contributes zero days, got %d", sum.DiasPromedioVencimiento)
	}
	if sum.TotalNeto != 100 {
		t.Errorf("neto identity broken: %v", sum.TotalNeto)
	}
}

func TestSummarize_AdvanceWithNegativeBalance(t *testing.T) {
	sum := Summarize([]models.Document{doc(models.TypeAdvance, models.NewDate(2025, 3, 25), -150)}, asOf)
	if sum.TotalCreditos != 150 {
		t.Errorf("advance credit = %v, want 150", sum.TotalCreditos)
	}
	// Still classified by due date like an ordinary document.
	if sum.CantidadPorVencer != 1 || sum.TotalPorVencer != -150 {
		t.Errorf("advance classification = %d/%v, want 1/-150", sum.CantidadPorVencer, sum.TotalPorVencer)
	}
}

func TestSummarize_Averages(t *testing.T) {
	docs := []models.Document{
		doc(models.TypeInvoice, models.NewDate(2025, 3, 5), 100),  // 10 days overdue
		doc(models.TypeInvoice, models.NewDate(2025, 2, 23), 100), // 20 days overdue
	}
	sum := Summarize(docs, asOf)
	if sum.DiasPromedioVencimiento != 15 {
		t.Errorf("overdue average = %d, want 15", sum.DiasPromedioVencimiento)
	}
	if sum.DiasPromedioTodos != 15 {
		t.Errorf("all average = %d, want 15", sum.DiasPromedioTodos)
	}
}

func TestSummarize_EmptySetHasZeroAverages(t *testing.T) {
	sum := Summarize(nil, asOf)
	if sum.DiasPromedioVencimiento != 0 || sum.DiasPromedioTodos != 0 {
		t.Errorf("empty set averages must be zero, got %+v", sum)
	}
}

func TestSummarize_MonthProgress(t *testing.T) {
	sum := Summarize(nil, asOf)
	if sum.DiasTranscurridos != 15 {
		t.Errorf("dias_transcurridos = %d, want 15", sum.DiasTranscurridos)
	}
	if sum.DiasFaltantes != 16 { // March has 31 days
		t.Errorf("dias_faltantes = %d, want 16", sum.DiasFaltantes)
	}
}
