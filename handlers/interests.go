package handlers

import (
	"log"
	"net/http"
	"tripweaver/services"

	"github.com/gin-gonic/gin"
)

type InterestsRequest struct {
	Destination string `json:"destination" binding:"required"`
}

type InterestsResponse struct {
	Destination string   `json:"destination"`
	Interests   []string `json:"interests"`
	Source      string   `json:"source"` // "ai" or "curated"
}

// InterestsHandler suggests interest tags for a destination. It prefers
// the generation strategy and falls back to the curated table when the
// call fails, so the endpoint always answers.
func InterestsHandler(c *gin.Context) {
	var req InterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	source := "ai"
	var interests []string
	var err error

	if ai := services.GetAIClient(); ai != nil {
		suggester := services.AIInterestSuggester{AI: ai}
		interests, err = suggester.SuggestedInterests(c.Request.Context(), req.Destination)
		if err != nil || len(interests) == 0 {
			if err != nil {
				log.Printf("⚠️  AI interest suggestion failed: %v — using curated list", err)
			}
			interests = nil
		}
	}

	if len(interests) == 0 {
		source = "curated"
		interests, _ = services.StaticInterestSuggester{}.SuggestedInterests(c.Request.Context(), req.Destination)
	}

	c.JSON(http.StatusOK, InterestsResponse{
		Destination: req.Destination,
		Interests:   interests,
		Source:      source,
	})
}
