// cmd/authors/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"libris/internal/authors"
	"libris/internal/database"
	"libris/internal/tracing"
	"libris/internal/web"
)

func main() {
	ctx := context.Background()

	shutdown, err := tracing.Init(ctx, "authors")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer shutdown(ctx)

	db, err := database.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	svc := authors.NewService(db)
	handler := authors.NewHandler(svc)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		web.JSON(w, http.StatusOK, database.Health(db))
	})
	handler.Routes(router)

	port := getEnv("PORT", "8082")
	log.Printf("Authors service listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
