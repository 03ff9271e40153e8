// internal/clients/books_client.go
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"libris/internal/apperr"
	"libris/internal/books"
)

// BooksClient resolves book references against the books service.
type BooksClient struct {
	baseURL string
}

func NewBooksClient(baseURL string) *BooksClient {
	return &BooksClient{baseURL: baseURL}
}

func (c *BooksClient) GetBook(ctx context.Context, id uuid.UUID) (*books.Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/books/%s", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, apperr.Internal("books service unreachable", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, apperr.NotFoundf("book with ID %s does not exist", id)
	default:
		return nil, apperr.Internal(fmt.Sprintf("books service returned status %d", resp.StatusCode), nil)
	}

	var book books.Book
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return nil, apperr.Internal("failed to decode book", err)
	}

	return &book, nil
}
