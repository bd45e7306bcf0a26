package services

import (
	"context"

	"github.com/Lokavishruth/siftclub/models"
	"github.com/Lokavishruth/siftclub/utils"
)

// ScanInput carries the fields of one scan request. At most one input path
// is taken per request; when several are present the priority is
// barcode > photo > ingredients > url.
type ScanInput struct {
	Barcode     string
	PhotoPath   string
	PhotoName   string
	PhotoMime   string
	Ingredients string
	URL         string
	Profile     string
}

// ScanService runs the full pipeline: resolve the input to an ingredient
// list, build the analysis prompt, call the completion service and assemble
// the response envelope. It holds no per-request state.
type ScanService struct {
	catalog     *OpenFoodFactsService
	recognition *RecognitionService
	ai          Completer
}

func NewScanService(catalog *OpenFoodFactsService, recognition *RecognitionService, ai Completer) *ScanService {
	return &ScanService{catalog: catalog, recognition: recognition, ai: ai}
}

// Scan executes the pipeline for one request. The first stage failure is
// terminal; the returned error is always a *ScanError ready for Dispatch.
// Temp-file cleanup for a photo input stays with the caller.
func (s *ScanService) Scan(ctx context.Context, in ScanInput) (*models.ScanResponse, error) {
	product, ingredients, err := s.resolve(ctx, in)
	if err != nil {
		return nil, err
	}

	prompt := BuildAnalysisPrompt(ingredients, in.Profile)
	answer, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	resp := &models.ScanResponse{
		Ingredients:    ingredients,
		OpenAIResponse: answer,
	}
	if product != nil {
		resp.ProductName = product.Name
		resp.Brands = product.Brands
		resp.Code = product.Barcode
	}
	return resp, nil
}

// resolve normalizes the four input shapes into an ingredient list plus
// optional product metadata. The direct-text path skips catalog resolution
// entirely.
func (s *ScanService) resolve(ctx context.Context, in ScanInput) (*models.Product, string, error) {
	switch {
	case in.Barcode != "":
		barcode, err := utils.ExtractBarcode(in.Barcode)
		if err != nil {
			return nil, "", NewScanError(InvalidBarcode, "Invalid barcode.", err)
		}
		return s.lookup(ctx, barcode)

	case in.PhotoPath != "":
		barcode, err := s.recognition.Scan(ctx, in.PhotoPath, in.PhotoName, in.PhotoMime)
		if err != nil {
			return nil, "", err
		}
		return s.lookup(ctx, barcode)

	case in.Ingredients != "":
		return nil, in.Ingredients, nil

	case in.URL != "":
		barcode, err := utils.ExtractBarcodeFromURL(in.URL)
		if err != nil {
			return nil, "", NewScanError(InvalidBarcode, "Invalid product URL.", err)
		}
		return s.lookup(ctx, barcode)
	}
	return nil, "", NewScanError(ValidationError, "No input provided.", nil)
}

func (s *ScanService) lookup(ctx context.Context, barcode string) (*models.Product, string, error) {
	product, err := s.catalog.Lookup(ctx, barcode)
	if err != nil {
		return nil, "", err
	}
	return product, product.Ingredients, nil
}
