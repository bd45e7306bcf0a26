package models

// A product entry resolved from the Open Food Facts catalog.
type Product struct {
	Barcode     string `json:"code"`
	Name        string `json:"product_name"`
	Brands      string `json:"brands"`
	Ingredients string `json:"ingredients_text"`
}

// ScanResponse is the uniform envelope returned by every scan-style endpoint.
// All five fields are always present; paths that skip catalog resolution
// leave the product fields as empty strings.
type ScanResponse struct {
	ProductName    string `json:"product_name"`
	Brands         string `json:"brands"`
	Code           string `json:"code"`
	Ingredients    string `json:"ingredients_text"`
	OpenAIResponse string `json:"openai_response"`
}
