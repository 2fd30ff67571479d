package http

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"cajachica/internal/core"
	"cajachica/internal/storage"
)

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato de solicitud no válido").Write(w)
		return
	}

	c := core.Category{
		Name:  formValue(r, "name"),
		Icon:  formValue(r, "icon"),
		Color: formValue(r, "color"),
	}

	id, err := s.catalog.CreateCategory(r.Context(), c)
	if err != nil {
		s.writeCatalogError(w, r, err, "categoría", "Error al guardar la categoría")
		return
	}

	NewHTMXResponse().
		TriggerCatalogChanged().
		BodyHTML(fmt.Sprintf(`<div class="success">Categoría #%d creada: %s</div>`,
			id, template.HTMLEscapeString(c.Name))).
		Write(w)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		BadRequestError("Identificador no válido").Write(w)
		return
	}

	if err := s.catalog.DeleteCategory(r.Context(), id); err != nil {
		s.writeCatalogError(w, r, err, "categoría", "Error al eliminar la categoría")
		return
	}

	NewHTMXResponse().
		TriggerCatalogChanged().
		BodyHTML(`<div class="success">Categoría eliminada</div>`).
		Write(w)
}

func (s *Server) handleCreateSubcategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato de solicitud no válido").Write(w)
		return
	}

	sub := core.Subcategory{
		CategoryID: formID(r, "category_id"),
		Name:       formValue(r, "name"),
		Active:     true,
	}
	if sub.CategoryID == 0 {
		UnprocessableEntityError("Seleccione la categoría padre").Write(w)
		return
	}

	id, err := s.catalog.CreateSubcategory(r.Context(), sub)
	if err != nil {
		s.writeCatalogError(w, r, err, "subcategoría", "Error al guardar la subcategoría")
		return
	}

	NewHTMXResponse().
		TriggerCatalogChanged().
		BodyHTML(fmt.Sprintf(`<div class="success">Subcategoría #%d creada: %s</div>`,
			id, template.HTMLEscapeString(sub.Name))).
		Write(w)
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato de solicitud no válido").Write(w)
		return
	}

	p := core.Person{
		Name:           formValue(r, "name"),
		Identification: formValue(r, "identification"),
		Active:         true,
	}

	id, err := s.catalog.CreatePerson(r.Context(), p)
	if err != nil {
		s.writeCatalogError(w, r, err, "persona", "Error al guardar la persona")
		return
	}

	NewHTMXResponse().
		TriggerCatalogChanged().
		BodyHTML(fmt.Sprintf(`<div class="success">Persona #%d registrada: %s</div>`,
			id, template.HTMLEscapeString(p.Name))).
		Write(w)
}

func (s *Server) handleCreateExecutor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		BadRequestError("Formato de solicitud no válido").Write(w)
		return
	}

	e := core.Executor{
		Name:           formValue(r, "name"),
		Identification: formValue(r, "identification"),
		Active:         true,
	}

	id, err := s.catalog.CreateExecutor(r.Context(), e)
	if err != nil {
		s.writeCatalogError(w, r, err, "ejecutor", "Error al guardar el ejecutor")
		return
	}

	NewHTMXResponse().
		TriggerCatalogChanged().
		BodyHTML(fmt.Sprintf(`<div class="success">Ejecutor #%d registrado: %s</div>`,
			id, template.HTMLEscapeString(e.Name))).
		Write(w)
}

// handleSuggestIdentification proposes a code while the user types, without
// touching the database.
func (s *Server) handleSuggestIdentification(w http.ResponseWriter, r *http.Request) {
	prefix := strings.ToUpper(sanitizeInput(r.URL.Query().Get("prefix")))
	if prefix != "PER" && prefix != "EXE" {
		prefix = "PER"
	}
	name := sanitizeInput(r.URL.Query().Get("name"))
	if name == "" {
		NewHTMXResponse().BodyHTML("").Write(w)
		return
	}

	suggestion := s.catalog.SuggestIdentification(prefix, name)
	NewHTMXResponse().
		BodyHTML(fmt.Sprintf(`<span class="identification-suggestion">%s</span>`,
			template.HTMLEscapeString(suggestion))).
		Write(w)
}

func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error, entity, fallback string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		NotFoundError("No se encontró la " + entity).Write(w)
	case errors.Is(err, storage.ErrDuplicate):
		ConflictError("Ya existe una entrada con ese nombre").Write(w)
	case errors.Is(err, storage.ErrReferenced):
		ConflictError("No se puede eliminar: hay movimientos que la usan").Write(w)
	case errors.Is(err, core.ErrEmptyName):
		UnprocessableEntityError("El nombre es obligatorio").Write(w)
	default:
		slog.ErrorContext(r.Context(), "Catalog handler error", "error", err, "path", r.URL.Path)
		InternalServerError(fallback).Write(w)
	}
}
