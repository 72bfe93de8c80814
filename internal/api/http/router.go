package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reuse-loop-backend/internal/service"
)

// Services bundles what the HTTP handlers call into.
type Services struct {
	Containers  service.ContainerService
	Ledger      service.LedgerService
	Restaurants service.RestaurantService
	Orders      service.OrderService
	Requests    service.RequestService
	Fulfillment service.FulfillmentService
}

// NewRouter builds the JSON API.
func NewRouter(svc Services) *mux.Router {
	router := mux.NewRouter()

	containers := NewContainerHandler(svc.Containers)
	router.HandleFunc("/containers", containers.List).Methods(http.MethodGet)
	router.HandleFunc("/containers", containers.Create).Methods(http.MethodPost)
	router.HandleFunc("/containers/assign", containers.Assign).Methods(http.MethodPost)
	router.HandleFunc("/containers/{id}", containers.Get).Methods(http.MethodGet)
	router.HandleFunc("/containers/{id}/transition", containers.Transition).Methods(http.MethodPost)

	ledger := NewLedgerHandler(svc.Ledger)
	router.HandleFunc("/users", ledger.RegisterUser).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}/balance", ledger.GetBalance).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}/summary", ledger.GetSummary).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}/transactions", ledger.GetTransactions).Methods(http.MethodGet)
	router.HandleFunc("/users/{id}/credit", ledger.Credit).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}/debit", ledger.Debit).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}/redeem", ledger.Redeem).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}/spin", ledger.Spin).Methods(http.MethodPost)
	router.HandleFunc("/rewards", ledger.ListRewards).Methods(http.MethodGet)

	restaurants := NewRestaurantHandler(svc.Restaurants)
	router.HandleFunc("/restaurants", restaurants.List).Methods(http.MethodGet)
	router.HandleFunc("/restaurants", restaurants.Register).Methods(http.MethodPost)
	router.HandleFunc("/restaurants/{id}/stock", restaurants.GetStock).Methods(http.MethodGet)

	queues := NewQueueHandler(svc.Orders, svc.Requests, svc.Fulfillment)
	router.HandleFunc("/orders", queues.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders", queues.PlaceOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders/{id}", queues.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}/deliver", queues.DeliverOrder).Methods(http.MethodPost)
	router.HandleFunc("/requests", queues.ListRequests).Methods(http.MethodGet)
	router.HandleFunc("/requests", queues.RequestReplenishment).Methods(http.MethodPost)
	router.HandleFunc("/requests/{id}", queues.GetRequest).Methods(http.MethodGet)
	router.HandleFunc("/requests/{id}/distribute", queues.Distribute).Methods(http.MethodPost)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return router
}
