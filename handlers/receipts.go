package handlers

import (
	"io"
	"log"
	"net/http"
	"tripweaver/database"
	"tripweaver/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxReceiptBytes caps receipt image uploads at 5 MB.
const maxReceiptBytes = 5 << 20

type ReceiptResponse struct {
	ReceiptID string                 `json:"receipt_id"`
	Receipt   services.ReceiptRecord `json:"receipt"`
}

// ReceiptHandler accepts a receipt image upload, runs OCR, and extracts
// amount, date and category. Missing amount or date come back unset; an
// unmatched category comes back "Unknown". Neither is an error.
func ReceiptHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing receipt image: upload a PNG or JPEG as the 'receipt' field"})
		return
	}
	if fileHeader.Size > maxReceiptBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt image too large (5 MB max)"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !services.ValidReceiptImageType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type: upload PNG or JPEG"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxReceiptBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}

	ocr := services.GetOCRClient()
	if ocr == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "OCR is not configured"})
		return
	}

	rawText, err := ocr.ExtractText(c.Request.Context(), image, contentType)
	if err != nil {
		log.Printf("⚠️  Receipt OCR failed: %v", err)
		c.JSON(externalStatus(err), gin.H{"error": "Could not read text from the receipt image"})
		return
	}

	record := services.ExtractReceipt(rawText)

	var amount *string
	if record.Amount != nil {
		s := record.Amount.StringFixed(2)
		amount = &s
	}

	receiptID := uuid.New().String()
	if err := database.SaveReceipt(&database.Receipt{
		ID:       receiptID,
		RawText:  record.RawText,
		Amount:   amount,
		TxDate:   record.Date,
		Category: record.Category,
	}); err != nil {
		log.Printf("❌ Failed to save receipt: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save receipt"})
		return
	}

	log.Printf("✅ Receipt %s extracted: category=%s", receiptID, record.Category)

	c.JSON(http.StatusOK, ReceiptResponse{
		ReceiptID: receiptID,
		Receipt:   record,
	})
}
