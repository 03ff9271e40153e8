// internal/clients/authors_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"libris/internal/apperr"
	"libris/internal/authors"
)

// AuthorsClient resolves author references against the authors service and
// creates authors on behalf of the suggestions service.
type AuthorsClient struct {
	baseURL string
}

func NewAuthorsClient(baseURL string) *AuthorsClient {
	return &AuthorsClient{baseURL: baseURL}
}

func (c *AuthorsClient) AuthorExists(ctx context.Context, id uuid.UUID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/authors/%s", c.baseURL, id), nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return apperr.Internal("authors service unreachable", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return apperr.NotFoundf("author with ID %s does not exist", id)
	default:
		return apperr.Internal(fmt.Sprintf("authors service returned status %d", resp.StatusCode), nil)
	}
}

func (c *AuthorsClient) CreateAuthor(ctx context.Context, params authors.CreateParams) (*authors.Author, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/authors", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, apperr.Internal("authors service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, apperr.Internal(fmt.Sprintf("authors service returned status %d", resp.StatusCode), nil)
	}

	var author authors.Author
	if err := json.NewDecoder(resp.Body).Decode(&author); err != nil {
		return nil, apperr.Internal("failed to decode author", err)
	}

	return &author, nil
}
