package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"cajachica/internal/core"
	"cajachica/internal/services"
	"cajachica/internal/storage"
)

func periodFromForm(r *http.Request) (core.CustomPeriod, *HTMXResponseBuilder) {
	year, err := strconv.Atoi(formValue(r, "year"))
	if err != nil {
		return core.CustomPeriod{}, UnprocessableEntityError("Año no válido")
	}
	month, err := strconv.Atoi(formValue(r, "month"))
	if err != nil {
		return core.CustomPeriod{}, UnprocessableEntityError("Mes no válido")
	}
	start, err := core.ParseDate(formValue(r, "start_date"))
	if err != nil {
		return core.CustomPeriod{}, UnprocessableEntityError("Fecha inicial no válida")
	}
	end, err := core.ParseDate(formValue(r, "end_date"))
	if err != nil {
		return core.CustomPeriod{}, UnprocessableEntityError("Fecha final no válida")
	}

	return core.CustomPeriod{
		Year:      year,
		Month:     month,
		StartDate: start,
		EndDate:   end,
		Active:    formValue(r, "active") != "0",
		Notes:     formValue(r, "notes"),
	}, nil
}

func (s *Server) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato de solicitud no válido").Write(w)
		return
	}

	p, errResp := periodFromForm(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	if _, err := s.periods.CreatePeriod(r.Context(), p); err != nil {
		s.writePeriodError(w, r, err, "Error al guardar el periodo")
		return
	}

	month := periodMonthKey(p)
	s.invalidateMonth(month)
	NewHTMXResponse().
		TriggerPeriodChanged(month).
		BodyHTML(fmt.Sprintf(`<div class="success">Periodo de %s %d guardado</div>`,
			core.MonthName(p.Month), p.Year)).
		Write(w)
}

func (s *Server) handleUpdatePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("Identificador no válido").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato de solicitud no válido").Write(w)
		return
	}

	p, errResp := periodFromForm(r)
	if errResp != nil {
		errResp.Write(w)
		return
	}
	p.ID = id

	if err := s.periods.UpdatePeriod(r.Context(), p); err != nil {
		s.writePeriodError(w, r, err, "Error al actualizar el periodo")
		return
	}

	month := periodMonthKey(p)
	s.invalidateMonth(month)
	NewHTMXResponse().
		TriggerPeriodChanged(month).
		BodyHTML(`<div class="success">Periodo actualizado</div>`).
		Write(w)
}

func (s *Server) handleDeactivatePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("Identificador no válido").Write(w)
		return
	}

	// Look the period up first so we know which month to invalidate.
	month := ""
	if periods, err := s.periods.ListPeriods(r.Context()); err == nil {
		for _, p := range periods {
			if p.ID == id {
				month = periodMonthKey(p)
				break
			}
		}
	}

	if err := s.periods.DeactivatePeriod(r.Context(), id); err != nil {
		s.writePeriodError(w, r, err, "Error al desactivar el periodo")
		return
	}

	if month != "" {
		s.invalidateMonth(month)
	}
	NewHTMXResponse().
		TriggerPeriodChanged(month).
		BodyHTML(`<div class="success">Periodo desactivado; el mes vuelve a sus fechas naturales</div>`).
		Write(w)
}

func periodMonthKey(p core.CustomPeriod) string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

func (s *Server) writePeriodError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrActivePeriodExists):
		ConflictError("Ya existe un periodo activo para ese mes").Write(w)
	case errors.Is(err, storage.ErrNotFound):
		NotFoundError("Periodo no encontrado").Write(w)
	case isValidationError(err):
		UnprocessableEntityError("Datos no válidos: " + err.Error()).Write(w)
	default:
		slog.ErrorContext(r.Context(), "Period handler error", "error", err, "path", r.URL.Path)
		InternalServerError(fallback).Write(w)
	}
}
