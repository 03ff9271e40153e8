// internal/clients/categories_client.go
package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"libris/internal/apperr"
)

// CategoriesClient resolves category references against the categories
// service.
type CategoriesClient struct {
	baseURL string
}

func NewCategoriesClient(baseURL string) *CategoriesClient {
	return &CategoriesClient{baseURL: baseURL}
}

func (c *CategoriesClient) CategoryExists(ctx context.Context, id uuid.UUID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/categories/%s", c.baseURL, id), nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return apperr.Internal("categories service unreachable", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return apperr.NotFoundf("category with ID %s does not exist", id)
	default:
		return apperr.Internal(fmt.Sprintf("categories service returned status %d", resp.StatusCode), nil)
	}
}
