package utils

import (
	"errors"
	"regexp"
)

var (
	barcodeRe    = regexp.MustCompile(`[0-9]{8,14}`)
	productURLRe = regexp.MustCompile(`/product/([0-9]{8,14})`)
)

// ErrNoBarcode is returned when the input contains no 8–14 digit run.
var ErrNoBarcode = errors.New("no barcode found")

// ExtractBarcode returns the first contiguous run of 8–14 ASCII digits in text.
func ExtractBarcode(text string) (string, error) {
	m := barcodeRe.FindString(text)
	if m == "" {
		return "", ErrNoBarcode
	}
	return m, nil
}

// ExtractBarcodeFromURL is the stricter variant used for product page URLs:
// the digits must appear in a "/product/<digits>" path segment.
func ExtractBarcodeFromURL(rawURL string) (string, error) {
	m := productURLRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", ErrNoBarcode
	}
	return m[1], nil
}
