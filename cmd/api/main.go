// cmd/api/main.go
package main

import (
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
)

// backends maps a gateway path prefix to the env var naming the service
// address and its local default.
var backends = []struct {
	prefix     string
	envVar     string
	defaultURL string
}{
	{"/api/v1/books", "BOOKS_SERVICE_URL", "http://localhost:8081"},
	{"/api/v1/authors", "AUTHORS_SERVICE_URL", "http://localhost:8082"},
	{"/api/v1/categories", "CATEGORIES_SERVICE_URL", "http://localhost:8083"},
	{"/api/v1/ratings", "RATINGS_SERVICE_URL", "http://localhost:8084"},
	{"/api/v1/orders", "ORDERS_SERVICE_URL", "http://localhost:8085"},
	{"/api/v1/tags", "TAGS_SERVICE_URL", "http://localhost:8086"},
	{"/api/v1/author-suggestions", "SUGGESTIONS_SERVICE_URL", "http://localhost:8087"},
	{"/api/v1/notifications", "NOTIFICATIONS_SERVICE_URL", "http://localhost:8088"},
	{"/api/v1/export", "EXPORT_SERVICE_URL", "http://localhost:8089"},
}

func main() {
	for _, b := range backends {
		target, err := url.Parse(getEnv(b.envVar, b.defaultURL))
		if err != nil {
			log.Fatalf("Invalid URL for %s: %v", b.envVar, err)
		}
		proxy := httputil.NewSingleHostReverseProxy(target)
		http.Handle(b.prefix+"/", http.StripPrefix(b.prefix, proxy))
	}

	port := getEnv("PORT", "8080")
	log.Printf("API Gateway listening on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
