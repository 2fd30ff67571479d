package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"cajachica/internal/core"
	"cajachica/internal/storage"
)

func fundFromForm(r *http.Request) (core.Fund, *HTMXResponseBuilder) {
	date, err := core.ParseDate(formValue(r, "date"))
	if err != nil {
		return core.Fund{}, UnprocessableEntityError("Fecha no válida")
	}
	amount, err := core.ParseAmount(formValue(r, "amount"))
	if err != nil {
		return core.Fund{}, UnprocessableEntityError("Monto no válido")
	}

	return core.Fund{
		Date:          date,
		Amount:        amount,
		PersonID:      formID(r, "person_id"),
		VoucherNumber: formValue(r, "voucher_number"),
		Notes:         formValue(r, "notes"),
	}, nil
}

func (s *Server) handleCreateFund(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato de solicitud no válido").Write(w)
		return
	}

	f, errResp := fundFromForm(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	id, err := s.funds.CreateFund(r.Context(), f)
	if err != nil {
		s.writeFundError(w, r, err, "Error al guardar el fondo")
		return
	}

	s.invalidateMonth(monthKeyOf(f.Date))
	NewHTMXResponse().
		TriggerFundChanged().
		BodyHTML(fmt.Sprintf(`<div class="success">Fondo #%d registrado: %s</div>`,
			id, core.FormatAmount(f.Amount))).
		Write(w)
}

func (s *Server) handleUpdateFund(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("Identificador no válido").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato de solicitud no válido").Write(w)
		return
	}

	f, errResp := fundFromForm(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}
	f.ID = id

	if err := s.funds.UpdateFund(r.Context(), f); err != nil {
		s.writeFundError(w, r, err, "Error al actualizar el fondo")
		return
	}

	s.invalidateMonth(monthKeyOf(f.Date))
	NewHTMXResponse().
		TriggerFundChanged().
		BodyHTML(`<div class="success">Fondo actualizado</div>`).
		Write(w)
}

// handleDeleteFund hard deletes. Funds have no downstream references, so
// unlike movements there is nothing to keep.
func (s *Server) handleDeleteFund(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("Identificador no válido").Write(w)
		return
	}

	if err := s.funds.DeleteFund(r.Context(), id); err != nil {
		s.writeFundError(w, r, err, "Error al eliminar el fondo")
		return
	}

	s.balanceCache.Delete(balanceKey)
	NewHTMXResponse().
		TriggerFundChanged().
		BodyHTML(`<div class="success">Fondo eliminado</div>`).
		Write(w)
}

func (s *Server) writeFundError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		NotFoundError("Fondo no encontrado").Write(w)
	case isValidationError(err):
		UnprocessableEntityError("Datos no válidos: " + err.Error()).Write(w)
	default:
		slog.ErrorContext(r.Context(), "Fund handler error", "error", err, "path", r.URL.Path)
		InternalServerError(fallback).Write(w)
	}
}
