package http

import (
	"net/http"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/service"
)

// QueueHandler serves the order and request queues and the fulfillment
// actions that drain them.
type QueueHandler struct {
	orderSvc       service.OrderService
	requestSvc     service.RequestService
	fulfillmentSvc service.FulfillmentService
}

func NewQueueHandler(orderSvc service.OrderService, requestSvc service.RequestService, fulfillmentSvc service.FulfillmentService) *QueueHandler {
	return &QueueHandler{orderSvc: orderSvc, requestSvc: requestSvc, fulfillmentSvc: fulfillmentSvc}
}

type placeOrderRequest struct {
	CustomerID   string `json:"customer_id"`
	RestaurantID string `json:"restaurant_id"`
	OrderText    string `json:"order_text"`
}

type deliverOrderRequest struct {
	ContainerIDs []domain.ContainerID `json:"container_ids"`
}

type replenishmentRequest struct {
	RestaurantID string `json:"restaurant_id"`
	Count        int32  `json:"count"`
}

func (h *QueueHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.orderSvc.PlaceOrder(r.Context(), domain.UserID(req.CustomerID), domain.RestaurantID(req.RestaurantID), req.OrderText)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *QueueHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.orderSvc.GetOrder(r.Context(), domain.OrderID(id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// ListOrders handles GET /orders?customer_id=&restaurant_id=&status=
func (h *QueueHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders, err := h.orderSvc.ListOrders(r.Context(), domain.OrderFilter{
		CustomerID:   domain.UserID(q.Get("customer_id")),
		RestaurantID: domain.RestaurantID(q.Get("restaurant_id")),
		Status:       domain.OrderStatus(q.Get("status")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *QueueHandler) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req deliverOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	order, err := h.fulfillmentSvc.DeliverOrder(r.Context(), domain.OrderID(id), req.ContainerIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *QueueHandler) RequestReplenishment(w http.ResponseWriter, r *http.Request) {
	var req replenishmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.requestSvc.RequestReplenishment(r.Context(), domain.RestaurantID(req.RestaurantID), req.Count)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *QueueHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	req, err := h.requestSvc.GetRequest(r.Context(), domain.RequestID(id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// ListRequests handles GET /requests?status=OPEN
func (h *QueueHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	requests, err := h.requestSvc.ListRequests(r.Context(), domain.RequestFilter{
		RestaurantID: domain.RestaurantID(q.Get("restaurant_id")),
		Status:       domain.RequestStatus(q.Get("status")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	if requests == nil {
		requests = []domain.Request{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *QueueHandler) Distribute(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	req, err := h.fulfillmentSvc.Distribute(r.Context(), domain.RequestID(id))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
