package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"regexp"
	"time"
)

// Image upload and processing upstream is much slower than a catalog lookup.
const recognitionTimeout = 20 * time.Second

var legacyBarcodeRe = regexp.MustCompile(`barcode=([0-9]+)`)

type RecognitionService struct {
	endpoint string
	client   *http.Client
}

// NewRecognitionService initializes the image recognition client.
func NewRecognitionService(endpoint string) *RecognitionService {
	return &RecognitionService{
		endpoint: endpoint,
		client:   &http.Client{Timeout: recognitionTimeout},
	}
}

// Scan uploads the image at path to the recognition endpoint and returns the
// barcode it detected. The caller owns the temp file backing the image and
// must remove it regardless of outcome. No retries are performed.
//
// Two upstream contract variants exist: newer deployments return a JSON body
// with a "barcode" field, older ones embed "barcode=<digits>" in the raw
// body. Both are accepted; the JSON field wins when present.
func (s *RecognitionService) Scan(ctx context.Context, path, filename, mimeType string) (string, error) {
	imageData, err := os.ReadFile(path)
	if err != nil {
		return "", NewScanError(Internal, "Internal server error.", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imagefile"; filename="%s"`, filename))
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	hdr.Set("Content-Type", mimeType)
	part, err := w.CreatePart(hdr)
	if err != nil {
		return "", NewScanError(Internal, "Internal server error.", err)
	}
	if _, err := part.Write(imageData); err != nil {
		return "", NewScanError(Internal, "Internal server error.", err)
	}
	if err := w.WriteField("process_image", "1"); err != nil {
		return "", NewScanError(Internal, "Internal server error.", err)
	}
	if err := w.Close(); err != nil {
		return "", NewScanError(Internal, "Internal server error.", err)
	}

	ctx, cancel := context.WithTimeout(ctx, recognitionTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &buf)
	if err != nil {
		return "", NewScanError(Internal, "Internal server error.", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", NewScanError(UpstreamTimeout, "Image recognition timed out.", err)
		}
		return "", NewScanError(UpstreamHTTPError, "Image recognition failed.", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", NewScanError(UpstreamTimeout, "Image recognition timed out.", err)
		}
		return "", NewScanError(UpstreamMalformed, "Failed to read recognition response.", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", NewScanError(UpstreamHTTPError,
			"Image recognition failed.",
			fmt.Errorf("recognition API error %d: %s", resp.StatusCode, string(body)))
	}

	barcode := extractScanBarcode(body)
	if barcode == "" {
		return "", NewScanError(BarcodeNotDetected, "Barcode not detected in image.", nil)
	}
	return barcode, nil
}

func extractScanBarcode(body []byte) string {
	var sr struct {
		Barcode string `json:"barcode"`
	}
	if err := json.Unmarshal(body, &sr); err == nil && sr.Barcode != "" {
		return sr.Barcode
	}
	if m := legacyBarcodeRe.FindSubmatch(body); m != nil {
		return string(m[1])
	}
	return ""
}
