package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// ─── OCR Client ───────────────────────────────────────────────────────────────

// OCRClient extracts raw text from receipt images through a hosted
// image-to-text model on the HuggingFace inference API: image bytes in,
// free text out. The extracted text is handed straight to ExtractReceipt.
type OCRClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

var ocrClient *OCRClient

func InitOCR() {
	model := os.Getenv("OCR_MODEL")
	if model == "" {
		model = "microsoft/trocr-base-printed"
	}

	ocrClient = &OCRClient{
		apiKey: os.Getenv("HUGGINGFACE_API_KEY"),
		model:  model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}

	if ocrClient.apiKey != "" {
		log.Println("✅ OCR initialized with model:", model)
	} else {
		log.Println("⚠️  HUGGINGFACE_API_KEY not set — receipt OCR is unavailable")
	}
}

func GetOCRClient() *OCRClient {
	return ocrClient
}

// receiptImageTypes are the accepted upload content types.
var receiptImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// ValidReceiptImageType reports whether the uploaded content type is an
// accepted receipt image format (PNG or JPEG).
func ValidReceiptImageType(contentType string) bool {
	return receiptImageTypes[contentType]
}

type ocrResponse []struct {
	GeneratedText string `json:"generated_text"`
}

// ExtractText runs OCR over one image and returns the recognized text.
func (c *OCRClient) ExtractText(ctx context.Context, image []byte, contentType string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: huggingface API key not configured", ErrExternalService)
	}
	if !ValidReceiptImageType(contentType) {
		return "", fmt.Errorf("%w: unsupported image type %q, use PNG or JPEG", ErrInvalidInput, contentType)
	}

	url := fmt.Sprintf("https://api-inference.huggingface.co/models/%s", c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(image))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == 503 {
		return "", fmt.Errorf("%w: OCR model is loading, retry in a few seconds", ErrExternalService)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: OCR API error (%d): %s", ErrExternalService, resp.StatusCode, string(body))
	}

	var result ocrResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to parse OCR response: %v", ErrExternalService, err)
	}
	if len(result) == 0 || result[0].GeneratedText == "" {
		return "", fmt.Errorf("%w: empty OCR response", ErrExternalService)
	}

	return result[0].GeneratedText, nil
}
