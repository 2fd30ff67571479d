package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseWritesTriggers(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHTMXResponse().
		TriggerMovementChanged("2026-01").
		BodyHTML(`<div class="success">ok</div>`).
		Write(rec)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var triggers map[string]any
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not JSON: %v", err)
	}
	payload, ok := triggers["movement:changed"].(map[string]any)
	if !ok {
		t.Fatalf("movement:changed missing from %v", triggers)
	}
	if payload["month"] != "2026-01" {
		t.Errorf("month = %v, want 2026-01", payload["month"])
	}
	if _, ok := triggers["balance:refresh"]; !ok {
		t.Error("balance:refresh trigger missing")
	}
}

func TestErrorResponseEscapesMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	UnprocessableEntityError(`<script>alert("x")</script>`).Write(rec)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<script>") {
		t.Errorf("message not escaped: %s", body)
	}
	if !strings.Contains(body, `class="error"`) {
		t.Errorf("error wrapper missing: %s", body)
	}
}

func TestNoTriggerHeaderWithoutTriggers(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessResponse("listo").Write(rec)

	if rec.Header().Get("HX-Trigger") != "" {
		t.Errorf("unexpected HX-Trigger header %q", rec.Header().Get("HX-Trigger"))
	}
	if !strings.Contains(rec.Body.String(), "listo") {
		t.Errorf("body = %s", rec.Body.String())
	}
}
