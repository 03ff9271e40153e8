// tests/integration/main_test.go
package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libris/internal/books"
	"libris/internal/clients"
	"libris/internal/messaging"
	"libris/internal/orders"
)

// TestSuite wires the books service behind a real HTTP server and the orders
// service on top of it through the HTTP client, both backed by one database.
type TestSuite struct {
	db        *sql.DB
	booksURL  string
	booksSrv  *httptest.Server
	ordersSrv *httptest.Server
}

// allowAll accepts every author and category reference so catalog writes do
// not need the authors and categories services running.
type allowAll struct{}

func (allowAll) AuthorExists(context.Context, uuid.UUID) error   { return nil }
func (allowAll) CategoryExists(context.Context, uuid.UUID) error { return nil }

func setupTestSuite(t *testing.T) *TestSuite {
	t.Helper()

	pgUser := getenv("PGUSER", "user")
	pgPassword := getenv("PGPASSWORD", "password")
	pgHost := getenv("PGHOST", "localhost")
	pgPort := getenv("PGPORT", "5432")
	pgDB := getenv("PGDATABASE", "testdb")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pgHost, pgPort, pgUser, pgPassword, pgDB)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	if err := db.Ping(); err != nil {
		t.Skipf("skipping integration tests: could not connect to postgres: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			year INT NOT NULL DEFAULT 0,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			author_id UUID NOT NULL,
			category_id UUID,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS ratings (
			id UUID PRIMARY KEY,
			book_id UUID NOT NULL,
			value INT NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id),
			book_id UUID NOT NULL,
			quantity INT NOT NULL,
			position INT NOT NULL
		);
	`)
	require.NoError(t, err)

	_, err = db.Exec("TRUNCATE TABLE order_items, orders, ratings, books CASCADE")
	require.NoError(t, err)

	booksRouter := chi.NewRouter()
	books.NewHandler(books.NewService(db, allowAll{}, allowAll{})).Routes(booksRouter)
	booksSrv := httptest.NewServer(booksRouter)

	ordersRouter := chi.NewRouter()
	booksClient := clients.NewBooksClient(booksSrv.URL)
	orders.NewHandler(orders.NewService(db, booksClient, messaging.Nop{})).Routes(ordersRouter)
	ordersSrv := httptest.NewServer(ordersRouter)

	t.Cleanup(func() {
		ordersSrv.Close()
		booksSrv.Close()
		db.Close()
	})

	return &TestSuite{db: db, booksURL: booksSrv.URL, booksSrv: booksSrv, ordersSrv: ordersSrv}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (ts *TestSuite) postJSON(t *testing.T, url string, payload any, out any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (ts *TestSuite) patch(t *testing.T, url string, payload any, out any) *http.Response {
	t.Helper()
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(http.MethodPatch, url, bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestOrderFlow(t *testing.T) {
	ts := setupTestSuite(t)

	// Add a book to the catalog
	var book books.Book
	resp := ts.postJSON(t, ts.booksURL+"/books", map[string]any{
		"name":     "The Master and Margarita",
		"year":     1967,
		"authorId": uuid.NewString(),
	}, &book)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Place an order for it
	var order orders.Order
	resp = ts.postJSON(t, ts.ordersSrv.URL+"/orders", map[string]any{
		"userId": "reader-1",
		"items":  []map[string]any{{"bookId": book.ID.String(), "quantity": 2}},
	}, &order)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, orders.StatusPending, order.Status)
	require.Len(t, order.Items, 1)
	require.NotNil(t, order.Items[0].Book)
	assert.Equal(t, "The Master and Margarita", order.Items[0].Book.Name)

	// Approve, then complete
	var updated orders.Order
	resp = ts.patch(t, ts.ordersSrv.URL+"/orders/status", map[string]string{
		"orderId": order.ID.String(),
		"status":  "APPROVED",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, orders.StatusApproved, updated.Status)

	resp = ts.patch(t, ts.ordersSrv.URL+"/orders/status", map[string]string{
		"orderId": order.ID.String(),
		"status":  "COMPLETED",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, orders.StatusCompleted, updated.Status)

	// Cancelling a completed order is rejected
	resp = ts.patch(t, ts.ordersSrv.URL+"/orders/"+order.ID.String()+"/cancel", nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Returning it resets the lifecycle
	resp = ts.patch(t, ts.ordersSrv.URL+"/orders/"+order.ID.String()+"/return", nil, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, orders.StatusPending, updated.Status)

	// The user's history shows the order
	histResp, err := http.Get(ts.ordersSrv.URL + "/orders/user/reader-1")
	require.NoError(t, err)
	defer histResp.Body.Close()
	require.Equal(t, http.StatusOK, histResp.StatusCode)
	var history []orders.Order
	require.NoError(t, json.NewDecoder(histResp.Body).Decode(&history))
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)
}

func TestBooksCatalogRules(t *testing.T) {
	ts := setupTestSuite(t)
	authorID := uuid.NewString()

	var book books.Book
	resp := ts.postJSON(t, ts.booksURL+"/books", map[string]any{
		"name":     "War and Peace",
		"year":     1869,
		"authorId": authorID,
	}, &book)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// same title by the same author conflicts
	resp = ts.postJSON(t, ts.booksURL+"/books", map[string]any{
		"name":     "War and Peace",
		"year":     1869,
		"authorId": authorID,
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// same title by another author is fine
	resp = ts.postJSON(t, ts.booksURL+"/books", map[string]any{
		"name":     "War and Peace",
		"year":     1869,
		"authorId": uuid.NewString(),
	}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// a search with zero matches is an error, not an empty page
	searchResp, err := http.Get(ts.booksURL + "/books?search=nothing-matches-this")
	require.NoError(t, err)
	searchResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, searchResp.StatusCode)

	// query endpoints reject out-of-range parameters
	topResp, err := http.Get(ts.booksURL + "/books/top-rated?limit=51")
	require.NoError(t, err)
	topResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, topResp.StatusCode)

	recentResp, err := http.Get(ts.booksURL + "/books/recently-added?days=366")
	require.NoError(t, err)
	recentResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, recentResp.StatusCode)
}

func TestOrderForMissingBook(t *testing.T) {
	ts := setupTestSuite(t)

	resp := ts.postJSON(t, ts.ordersSrv.URL+"/orders", map[string]any{
		"userId": "reader-2",
		"items":  []map[string]any{{"bookId": uuid.NewString(), "quantity": 1}},
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderValidationAcrossServices(t *testing.T) {
	ts := setupTestSuite(t)

	var book books.Book
	resp := ts.postJSON(t, ts.booksURL+"/books", map[string]any{
		"name":     "Dead Souls",
		"year":     1842,
		"authorId": uuid.NewString(),
	}, &book)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// duplicate book lines in one order
	resp = ts.postJSON(t, ts.ordersSrv.URL+"/orders", map[string]any{
		"userId": "reader-3",
		"items": []map[string]any{
			{"bookId": book.ID.String(), "quantity": 1},
			{"bookId": book.ID.String(), "quantity": 1},
		},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// missing user
	resp = ts.postJSON(t, ts.ordersSrv.URL+"/orders", map[string]any{
		"items": []map[string]any{{"bookId": book.ID.String(), "quantity": 1}},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
