package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lucsky/cuid"

	"restopos/internal/models"
	"restopos/internal/repositories"
)

// maskCredentials hides secret values in API responses; only the field
// names and whether a value is set leak out.
func maskCredentials(pi *models.PaymentIntegration) *models.PaymentIntegration {
	masked := *pi
	masked.Credentials = make(map[string]string, len(pi.Credentials))
	for k, v := range pi.Credentials {
		if v == "" {
			masked.Credentials[k] = ""
			continue
		}
		masked.Credentials[k] = "****"
	}
	return &masked
}

// PaymentIntegrations handles /payments/integrations: list and create.
func (s *Server) PaymentIntegrations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		integrations, err := s.repos.Payments.GetAll(r.Context())
		if err != nil {
			s.log.Error("failed to list payment integrations", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		masked := make([]*models.PaymentIntegration, 0, len(integrations))
		for _, pi := range integrations {
			masked = append(masked, maskCredentials(pi))
		}
		writeJSON(w, http.StatusOK, masked)

	case http.MethodPost:
		var integration models.PaymentIntegration
		if err := decodeBody(r, &integration); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		if err := integration.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		integration.ID = cuid.New()
		if err := s.repos.Payments.Create(r.Context(), &integration); err != nil {
			s.log.Error("failed to create payment integration", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusCreated, maskCredentials(&integration))

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// PaymentIntegrationByID handles /payments/integrations/{id} plus the
// {id}/enable and {id}/disable toggles.
func (s *Server) PaymentIntegrationByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/payments/integrations/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid integration id")
		return
	}

	if action != "" {
		s.togglePaymentIntegration(w, r, id, action)
		return
	}

	switch r.Method {
	case http.MethodGet:
		integration, err := s.repos.Payments.GetByID(r.Context(), id)
		if errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, "integration not found")
			return
		}
		if err != nil {
			s.log.Error("failed to load payment integration", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, maskCredentials(integration))

	case http.MethodPut:
		var integration models.PaymentIntegration
		if err := decodeBody(r, &integration); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		integration.ID = id
		if err := integration.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if _, err := s.repos.Payments.GetByID(r.Context(), id); errors.Is(err, repositories.ErrNotFound) {
			writeError(w, http.StatusNotFound, "integration not found")
			return
		} else if err != nil {
			s.log.Error("failed to load payment integration", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if err := s.repos.Payments.Update(r.Context(), &integration); err != nil {
			s.log.Error("failed to update payment integration", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, maskCredentials(&integration))

	case http.MethodDelete:
		if err := s.repos.Payments.Delete(r.Context(), id); err != nil {
			s.log.Error("failed to delete payment integration", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) togglePaymentIntegration(w http.ResponseWriter, r *http.Request, id, action string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var enabled bool
	switch action {
	case "enable":
		enabled = true
	case "disable":
		enabled = false
	default:
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}

	if _, err := s.repos.Payments.GetByID(r.Context(), id); errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "integration not found")
		return
	} else if err != nil {
		s.log.Error("failed to load payment integration", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := s.repos.Payments.SetEnabled(r.Context(), id, enabled); err != nil {
		s.log.Error("failed to toggle payment integration", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "enabled": enabled})
}
