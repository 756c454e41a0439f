package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"momo-store/models"
	"momo-store/services"
	"momo-store/store"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": Restaurant.EnglishName + " API is running!",
		"status":  "healthy",
	})
}

func (s *Server) menuCategories(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.MenuItems(r.Context(), "")
	if err != nil {
		s.internal(w, r, err, "Failed to fetch menu")
		return
	}
	writeJSON(w, http.StatusOK, store.GroupCategories(items))
}

func (s *Server) menuItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.MenuItems(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		s.internal(w, r, err, "Failed to fetch menu items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) menuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Item id must be an integer")
		return
	}
	item, err := s.store.MenuItem(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		s.internal(w, r, err, "Failed to fetch menu item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var in models.CreateOrderInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	order, err := services.NewOrder(in, s.charge, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.CreateOrder(r.Context(), order); err != nil {
		s.internal(w, r, err, "Failed to create order")
		return
	}
	s.logger.Info().
		Str("request_id", RequestID(r.Context())).
		Str("order_id", order.OrderID).
		Int64("total", order.Total).
		Msg("order created")
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := s.store.Order(r.Context(), chi.URLParam(r, "orderID"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	if err != nil {
		s.internal(w, r, err, "Failed to fetch order")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}
	orders, err := s.store.Orders(r.Context(), r.URL.Query().Get("status"), limit, offset)
	if err != nil {
		s.internal(w, r, err, "Failed to fetch orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 10, 100)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	reviews, err := s.store.ApprovedReviews(r.Context(), limit)
	if err != nil {
		s.internal(w, r, err, "Failed to fetch reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	var in models.CreateReviewInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	review, err := services.NewReview(in, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.CreateReview(r.Context(), review); err != nil {
		s.internal(w, r, err, "Failed to submit review")
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var in models.CreateContactInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	msg, err := services.NewContactMessage(in, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.CreateContact(r.Context(), msg); err != nil {
		s.internal(w, r, err, "Failed to send message")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}
	msgs, err := s.store.ContactMessages(r.Context(), limit, offset)
	if err != nil {
		s.internal(w, r, err, "Failed to fetch messages")
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *Server) restaurantInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Restaurant)
}

func pagination(w http.ResponseWriter, r *http.Request) (limit, offset int, ok bool) {
	limit, err := queryInt(r, "limit", 50, 200)
	if err == nil {
		offset, err = queryInt(r, "offset", 0, 0)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return limit, offset, true
}

// internal logs err and answers 500 with a fixed detail.
func (s *Server) internal(w http.ResponseWriter, r *http.Request, err error, detail string) {
	s.logger.Error().
		Err(err).
		Str("request_id", RequestID(r.Context())).
		Str("url", r.URL.String()).
		Msg(detail)
	writeError(w, http.StatusInternalServerError, detail)
}
