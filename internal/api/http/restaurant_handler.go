package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/service"
)

type RestaurantHandler struct {
	restaurantSvc service.RestaurantService
}

func NewRestaurantHandler(restaurantSvc service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurantSvc: restaurantSvc}
}

type registerRestaurantRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type stockResponse struct {
	RestaurantID domain.RestaurantID `json:"restaurant_id"`
	Count        int                 `json:"count"`
	Containers   []domain.Container  `json:"containers"`
}

func (h *RestaurantHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRestaurantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	restaurant := &domain.Restaurant{ID: domain.RestaurantID(req.ID), Name: req.Name}
	if err := h.restaurantSvc.RegisterRestaurant(r.Context(), restaurant); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, restaurant)
}

func (h *RestaurantHandler) List(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurantSvc.ListRestaurants(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if restaurants == nil {
		restaurants = []domain.Restaurant{}
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *RestaurantHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	id := domain.RestaurantID(mux.Vars(r)["id"])
	stock, err := h.restaurantSvc.GetStock(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if stock == nil {
		stock = []domain.Container{}
	}
	writeJSON(w, http.StatusOK, stockResponse{RestaurantID: id, Count: len(stock), Containers: stock})
}
