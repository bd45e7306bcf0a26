package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeCompleter struct {
	answer     string
	err        error
	lastPrompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func newTestScanService(t *testing.T, catalogBody string, ai *fakeCompleter) *ScanService {
	t.Helper()
	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogBody))
	}))
	t.Cleanup(catalogSrv.Close)
	return NewScanService(
		NewOpenFoodFactsService(catalogSrv.URL),
		NewRecognitionService("http://unused.invalid"),
		ai,
	)
}

func TestScanBarcodePath(t *testing.T) {
	ai := &fakeCompleter{answer: `{"ingredient_risks":[]}`}
	svc := newTestScanService(t,
		`{"status":1,"product":{"product_name":"Nutella","brands":"Ferrero","code":"3017620422003","ingredients_text":"whey, cocoa"}}`,
		ai)

	resp, err := svc.Scan(context.Background(), ScanInput{Barcode: "3017620422003"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Ingredients != "whey, cocoa" {
		t.Errorf("got ingredients %q, want %q", resp.Ingredients, "whey, cocoa")
	}
	if resp.ProductName != "Nutella" || resp.Brands != "Ferrero" || resp.Code != "3017620422003" {
		t.Errorf("envelope metadata mismatch: %+v", resp)
	}
	if resp.OpenAIResponse != `{"ingredient_risks":[]}` {
		t.Errorf("analysis text was altered: %q", resp.OpenAIResponse)
	}
	if !strings.Contains(ai.lastPrompt, "Ingredients: whey, cocoa") {
		t.Errorf("prompt missing resolved ingredients:\n%q", ai.lastPrompt)
	}
}

func TestScanBarcodeWithNoise(t *testing.T) {
	ai := &fakeCompleter{answer: "ok"}
	svc := newTestScanService(t,
		`{"status":1,"product":{"ingredients_text":"sugar"}}`, ai)

	resp, err := svc.Scan(context.Background(), ScanInput{Barcode: "barcode=1234567890123 noise"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Code != "1234567890123" {
		t.Errorf("extractor did not pick the digit run: %+v", resp)
	}
}

func TestScanInvalidBarcode(t *testing.T) {
	svc := newTestScanService(t, `{}`, &fakeCompleter{})
	_, err := svc.Scan(context.Background(), ScanInput{Barcode: "abc12"})
	wantKind(t, err, InvalidBarcode)
}

func TestScanURLPath(t *testing.T) {
	ai := &fakeCompleter{answer: "ok"}
	svc := newTestScanService(t,
		`{"status":1,"product":{"product_name":"Oats","ingredients_text":"oats"}}`, ai)

	resp, err := svc.Scan(context.Background(), ScanInput{
		URL:     "https://world.openfoodfacts.org/product/3017620422003/nutella",
		Profile: "gluten intolerance",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ProductName != "Oats" {
		t.Errorf("envelope metadata mismatch: %+v", resp)
	}
	if !strings.HasPrefix(ai.lastPrompt, "The user has the following health profile") {
		t.Errorf("profile preamble missing from prompt")
	}
}

func TestScanInvalidURL(t *testing.T) {
	svc := newTestScanService(t, `{}`, &fakeCompleter{})
	_, err := svc.Scan(context.Background(), ScanInput{URL: "https://example.com/no-product-here"})
	wantKind(t, err, InvalidBarcode)
}

func TestScanDirectTextPath(t *testing.T) {
	ai := &fakeCompleter{answer: "analysis"}
	// Catalog would fail if called; the text path must never reach it.
	svc := newTestScanService(t, `garbage`, ai)

	resp, err := svc.Scan(context.Background(), ScanInput{Ingredients: "sugar, salt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ProductName != "" || resp.Brands != "" || resp.Code != "" {
		t.Errorf("text path must leave product metadata empty: %+v", resp)
	}
	if resp.Ingredients != "sugar, salt" {
		t.Errorf("got ingredients %q", resp.Ingredients)
	}
	if !strings.Contains(ai.lastPrompt, "Ingredients: sugar, salt") {
		t.Errorf("prompt missing literal ingredient list:\n%q", ai.lastPrompt)
	}
	if strings.Contains(ai.lastPrompt, "health profile") {
		t.Errorf("prompt must have no profile preamble without a profile")
	}
}

func TestScanPriorityBarcodeOverText(t *testing.T) {
	ai := &fakeCompleter{answer: "ok"}
	svc := newTestScanService(t,
		`{"status":1,"product":{"ingredients_text":"from catalog"}}`, ai)

	resp, err := svc.Scan(context.Background(), ScanInput{
		Barcode:     "3017620422003",
		Ingredients: "typed text must lose",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Ingredients != "from catalog" {
		t.Errorf("barcode path must win over direct text: %+v", resp)
	}
}

func TestScanNoInput(t *testing.T) {
	svc := newTestScanService(t, `{}`, &fakeCompleter{})
	_, err := svc.Scan(context.Background(), ScanInput{Profile: "only a profile"})
	wantKind(t, err, ValidationError)
}

func TestScanCompletionFailurePropagates(t *testing.T) {
	ai := &fakeCompleter{err: NewScanError(UpstreamUnavailable, "Analysis service unavailable.", nil)}
	svc := newTestScanService(t,
		`{"status":1,"product":{"ingredients_text":"sugar"}}`, ai)

	_, err := svc.Scan(context.Background(), ScanInput{Barcode: "3017620422003"})
	wantKind(t, err, UpstreamUnavailable)
}
