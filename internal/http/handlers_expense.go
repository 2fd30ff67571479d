package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"cajachica/internal/core"
	"cajachica/internal/storage"
)

// expenseFromForm builds a movement from the submitted form. The date and
// amount fields report their own errors; everything else is optional text.
func expenseFromForm(r *http.Request) (core.Expense, *HTMXResponseBuilder) {
	date, err := core.ParseDate(formValue(r, "date"))
	if err != nil {
		return core.Expense{}, UnprocessableEntityError("Fecha no válida")
	}
	amount, err := core.ParseAmount(formValue(r, "amount"))
	if err != nil {
		return core.Expense{}, UnprocessableEntityError("Monto no válido")
	}

	return core.Expense{
		Date:            date,
		CorrespondentTo: formValue(r, "correspondent_to"),
		Executor:        formValue(r, "executor"),
		CategoryID:      formID(r, "category_id"),
		SubcategoryID:   formID(r, "subcategory_id"),
		Amount:          amount,
		VoucherNumber:   formValue(r, "voucher_number"),
		Notes:           formValue(r, "notes"),
		Status:          core.StatusActive,
	}, nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato de solicitud no válido").Write(w)
		return
	}

	e, errResp := expenseFromForm(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}
	id, err := s.expenses.CreateExpense(r.Context(), e)
	if err != nil {
		s.writeExpenseError(w, r, err, "Error al guardar el movimiento")
		return
	}

	month := monthKeyOf(e.Date)
	s.invalidateMonth(month)
	NewHTMXResponse().
		TriggerMovementChanged(month).
		BodyHTML(fmt.Sprintf(`<div class="success">Movimiento #%d registrado: %s</div>`,
			id, core.FormatAmount(e.Amount))).
		Write(w)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("Identificador no válido").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato de solicitud no válido").Write(w)
		return
	}

	previous, err := s.expenses.GetExpense(r.Context(), id)
	if err != nil {
		s.writeExpenseError(w, r, err, "Error al cargar el movimiento")
		return
	}

	e, errResp := expenseFromForm(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}
	e.ID = id
	e.Status = previous.Status

	if err := s.expenses.UpdateExpense(r.Context(), e); err != nil {
		s.writeExpenseError(w, r, err, "Error al actualizar el movimiento")
		return
	}

	// The edit may have moved the row across months; drop both.
	s.invalidateMonth(monthKeyOf(previous.Date))
	month := monthKeyOf(e.Date)
	s.invalidateMonth(month)
	NewHTMXResponse().
		TriggerMovementChanged(month).
		BodyHTML(`<div class="success">Movimiento actualizado</div>`).
		Write(w)
}

func (s *Server) handleCancelExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("Identificador no válido").Write(w)
		return
	}

	e, err := s.expenses.GetExpense(r.Context(), id)
	if err != nil {
		s.writeExpenseError(w, r, err, "Error al cargar el movimiento")
		return
	}

	if err := s.expenses.CancelExpense(r.Context(), id); err != nil {
		s.writeExpenseError(w, r, err, "Error al anular el movimiento")
		return
	}

	month := monthKeyOf(e.Date)
	s.invalidateMonth(month)
	NewHTMXResponse().
		TriggerMovementChanged(month).
		BodyHTML(`<div class="success">Movimiento anulado</div>`).
		Write(w)
}

func (s *Server) writeExpenseError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		NotFoundError("Movimiento no encontrado").Write(w)
	case isValidationError(err):
		UnprocessableEntityError("Datos no válidos: " + err.Error()).Write(w)
	default:
		slog.ErrorContext(r.Context(), "Expense handler error", "error", err, "path", r.URL.Path)
		InternalServerError(fallback).Write(w)
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidDate, core.ErrInvalidAmount, core.ErrEmptyExecutor,
		core.ErrInvalidStatus, core.ErrEmptyName, core.ErrInvalidMonth,
		core.ErrPeriodBackwards,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
