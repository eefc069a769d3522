package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(searchHandler *SearchHandler, uploadHandler *UploadHandler) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"OK","service":"pdf-search-server"}`))
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/search", searchHandler.SearchByPath).Methods("POST")
	api.HandleFunc("/upload", uploadHandler.UploadBatch).Methods("POST")
	api.HandleFunc("/search-session", searchHandler.SearchInSession).Methods("POST")
	api.HandleFunc("/session/{id}", uploadHandler.DeleteSession).Methods("DELETE")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300,
	})

	return c.Handler(router)
}
