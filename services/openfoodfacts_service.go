package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Lokavishruth/siftclub/models"
)

const catalogTimeout = 7 * time.Second

type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
}

// NewOpenFoodFactsService initializes the catalog client. The service is
// stateless and safe to share across requests.
func NewOpenFoodFactsService(baseURL string) *OpenFoodFactsService {
	return &OpenFoodFactsService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: catalogTimeout},
	}
}

// productResponse mirrors the catalog's product envelope. Product is a
// pointer so a found product with absent fields can be told apart from a
// body missing the product object entirely.
type productResponse struct {
	Status  int `json:"status"`
	Product *struct {
		ProductName     string `json:"product_name"`
		Brands          string `json:"brands"`
		Code            string `json:"code"`
		IngredientsText string `json:"ingredients_text"`
	} `json:"product"`
}

// Lookup resolves a barcode to a product with a non-empty ingredient list.
// A single attempt is made; every failure is reported as a distinct kind.
func (s *OpenFoodFactsService) Lookup(ctx context.Context, barcode string) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, catalogTimeout)
	defer cancel()

	u := fmt.Sprintf("%s/api/v0/product/%s.json", s.baseURL, barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, NewScanError(Internal, "Internal server error.", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, NewScanError(UpstreamTimeout, "Product lookup timed out.", err)
		}
		return nil, NewScanError(UpstreamHTTPError, "Product lookup failed.", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, NewScanError(UpstreamTimeout, "Product lookup timed out.", err)
		}
		return nil, NewScanError(UpstreamMalformed, "Failed to read product data.", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, NewScanError(ProductNotFound, "Product not found.", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewScanError(UpstreamHTTPError,
			"Product lookup failed.",
			fmt.Errorf("catalog API error %d: %s", resp.StatusCode, string(body)))
	}

	var pr productResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, NewScanError(UpstreamMalformed, "Failed to parse product data.", err)
	}
	if pr.Status != 1 {
		return nil, NewScanError(ProductNotFound, "Product not found.", nil)
	}
	if pr.Product == nil {
		return nil, NewScanError(UpstreamMalformed, "Failed to parse product data.", nil)
	}
	if pr.Product.IngredientsText == "" {
		return nil, NewScanError(NoIngredients, "No ingredients found.", nil)
	}

	code := pr.Product.Code
	if code == "" {
		code = barcode
	}
	return &models.Product{
		Barcode:     code,
		Name:        pr.Product.ProductName,
		Brands:      pr.Product.Brands,
		Ingredients: pr.Product.IngredientsText,
	}, nil
}

// isTimeout reports whether err represents an exceeded deadline, either from
// the request context or the transport.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
