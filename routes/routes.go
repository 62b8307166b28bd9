package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tweetapp/auth"
	"tweetapp/handlers"
	"tweetapp/monitoring"
	"tweetapp/repositories"
)

// SetupRoutes initializes all the application routes.
// The routing logic is isolated here.
func SetupRoutes(
	sessions *auth.Sessions,
	users repositories.UserRepository,
	userHandler *handlers.UserHandler,
	messageHandler *handlers.MessageHandler,
	timelineHandler *handlers.TimelineHandler,
) http.Handler {
	router := mux.NewRouter()

	// Open routes
	open := router.NewRoute().Subrouter()
	open.Use(auth.FulfillLogin(sessions))
	open.HandleFunc("/register", userHandler.Register).Methods("POST")
	open.HandleFunc("/login", userHandler.Login).Methods("POST")

	// Public profile routes
	router.HandleFunc("/users/{username}/messages", messageHandler.ByUser).Methods("GET")
	router.HandleFunc("/users/{username}/following", userHandler.Following).Methods("GET")
	router.HandleFunc("/users/{username}/followers", userHandler.Followers).Methods("GET")
	router.HandleFunc("/messages/{id:[0-9]+}", messageHandler.ByID).Methods("GET")

	// Routes behind the auth gate
	protected := router.NewRoute().Subrouter()
	protected.Use(auth.RequireLogin(sessions, users))
	protected.HandleFunc("/logout", userHandler.Logout).Methods("POST")
	protected.HandleFunc("/messages", messageHandler.Create).Methods("POST")
	protected.HandleFunc("/messages/{id:[0-9]+}/like", messageHandler.Like).Methods("POST", "DELETE")
	protected.HandleFunc("/users/{username}/follow", userHandler.Follow).Methods("POST", "DELETE")
	protected.HandleFunc("/timeline", timelineHandler.Get).Methods("GET")
	protected.HandleFunc("/loadMore/{pageNum:[0-9]+}", timelineHandler.LoadMore).Methods("GET")

	// System routes
	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true}`))
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return monitoring.InstrumentHandler(router)
}
