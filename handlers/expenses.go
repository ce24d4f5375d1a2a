package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"tripweaver/database"
	"tripweaver/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxSheetBytes caps spreadsheet uploads at 10 MB.
const maxSheetBytes = 10 << 20

type ExpenseResponse struct {
	BatchID        string                `json:"batch_id"`
	Rows           []services.ExpenseRow `json:"rows"`
	Total          string                `json:"total"`
	CategoryTotals map[string]string     `json:"category_totals"`
	ConvertedTotal string                `json:"converted_total,omitempty"`
	Currency       string                `json:"currency,omitempty"`
	Warnings       []string              `json:"warnings,omitempty"`
}

// ExpenseHandler accepts an expense spreadsheet (.xlsx or .csv with
// Description and Amount columns), classifies every row, and returns the
// rows with per-category totals. Classification failures mark individual
// rows "Unknown" without failing the batch.
func ExpenseHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing spreadsheet: upload an .xlsx or .csv as the 'file' field"})
		return
	}
	if fileHeader.Size > maxSheetBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spreadsheet too large (10 MB max)"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read uploaded file"})
		return
	}
	defer file.Close()

	rows, err := services.ParseExpenseSheet(file, fileHeader.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Spreadsheet has no usable rows"})
		return
	}

	var cls services.ExpenseClassifier
	if ai := services.GetAIClient(); ai != nil {
		cls = ai
	}
	rows = services.ClassifyExpenses(c.Request.Context(), cls, rows)

	total := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	for _, row := range rows {
		total = total.Add(row.Amount)
		byCategory[row.Category] = byCategory[row.Category].Add(row.Amount)
	}

	categoryTotals := make(map[string]string, len(byCategory))
	for cat, amt := range byCategory {
		categoryTotals[cat] = amt.StringFixed(2)
	}

	// Optional currency conversion of the batch total. Failure downgrades
	// to a warning; the unconverted totals are always returned.
	var warnings []string
	var convertedTotal, currency string
	if target := c.PostForm("currency"); target != "" {
		base := c.DefaultPostForm("base_currency", "USD")
		if rc := services.GetRatesClient(); rc != nil {
			converted, err := rc.Convert(c.Request.Context(), total, base, target)
			if err != nil {
				log.Printf("⚠️  Currency conversion %s->%s failed: %v", base, target, err)
				warnings = append(warnings, "Currency conversion unavailable: totals shown in "+base)
			} else {
				convertedTotal = converted.StringFixed(2)
				currency = strings.ToUpper(target)
			}
		}
	}

	rowsJSON, _ := json.Marshal(rows)

	batchID := uuid.New().String()
	if err := database.SaveExpenseBatch(&database.ExpenseBatch{
		ID:       batchID,
		Filename: fileHeader.Filename,
		RowsJSON: string(rowsJSON),
		Total:    total.StringFixed(2),
	}); err != nil {
		log.Printf("❌ Failed to save expense batch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save expense batch"})
		return
	}

	log.Printf("✅ Expense batch %s classified: %d rows, total %s", batchID, len(rows), total.StringFixed(2))

	c.JSON(http.StatusOK, ExpenseResponse{
		BatchID:        batchID,
		Rows:           rows,
		Total:          total.StringFixed(2),
		CategoryTotals: categoryTotals,
		ConvertedTotal: convertedTotal,
		Currency:       currency,
		Warnings:       warnings,
	})
}
