package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"restopos/internal/models"
	"restopos/internal/repositories"
)

var validStatuses = map[string]bool{
	models.OrderStatusNew:       true,
	models.OrderStatusPreparing: true,
	models.OrderStatusReady:     true,
	models.OrderStatusOnTheWay:  true,
	models.OrderStatusCompleted: true,
	models.OrderStatusCancelled: true,
}

// OrderByID handles GET /orders/{id} and POST /orders/{id}/status.
func (s *Server) OrderByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/orders/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodGet:
		s.getOrder(w, r, id)
	case action == "status" && r.Method == http.MethodPost:
		s.updateOrderStatus(w, r, id)
	case action == "" || action == "status":
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	default:
		writeError(w, http.StatusNotFound, "unknown action")
	}
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request, id string) {
	order, err := s.repos.Orders.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		s.log.Error("failed to load order", "error", err, "order_id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request, id string) {
	var req statusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if !validStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", req.Status))
		return
	}

	order, err := s.repos.Orders.GetByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		s.log.Error("failed to load order", "error", err, "order_id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// terminal states stay terminal
	if order.Status == models.OrderStatusCompleted || order.Status == models.OrderStatusCancelled {
		writeError(w, http.StatusConflict, fmt.Sprintf("order is already %s", order.Status))
		return
	}

	if err := s.repos.Orders.UpdateStatus(r.Context(), id, req.Status); err != nil {
		s.log.Error("failed to update order status", "error", err, "order_id", id)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	order.Status = req.Status

	switch req.Status {
	case models.OrderStatusCompleted:
		s.publisher.OrderCompleted(order)
	case models.OrderStatusCancelled:
		s.publisher.OrderCancelled(order)
	}

	writeJSON(w, http.StatusOK, order)
}
