package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"tripweaver/database"
	"tripweaver/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlanRequest struct {
	Origin      string   `json:"origin" binding:"required"`
	Destination string   `json:"destination" binding:"required"`
	StartDate   string   `json:"start_date" binding:"required"`
	EndDate     string   `json:"end_date" binding:"required"`
	Budget      string   `json:"budget"`
	Interests   []string `json:"interests"`
}

type PlanResponse struct {
	PlanID        string                    `json:"plan_id"`
	FlightSummary string                    `json:"flight_summary"`
	Itinerary     string                    `json:"itinerary"`
	Activities    []services.ActivityRecord `json:"activities"`
	Source        string                    `json:"source"` // "live" or "estimated"
	PDFURL        string                    `json:"pdf_url"`
	Warnings      []string                  `json:"warnings,omitempty"`
}

// PlanHandler runs the full planning pipeline for one request:
// validate → flight price search → itinerary generation → extract →
// enrich → render PDF → persist. External failures downgrade to fallbacks
// and warnings; only invalid input aborts before any outbound call.
func PlanHandler(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	trip, err := services.NewTripRequest(req.Origin, req.Destination, req.StartDate, req.EndDate, req.Budget, req.Interests)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var warnings []string
	source := "live"

	// ── Flight prices ─────────────────────────────────────────────────────────
	query, err := services.ComposeFlightQuery(trip)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var snippet string
	if sc := services.GetSearchClient(); sc != nil {
		snippet, err = sc.FetchFlightPrices(ctx, query)
		if err != nil {
			log.Printf("⚠️  Flight price search failed: %v — using fallback estimates", err)
			warnings = append(warnings, "Flight prices are estimates: live search unavailable")
			snippet = services.FlightPricesFallback(trip.Origin, trip.Destination)
			source = "estimated"
		}
	} else {
		snippet = services.FlightPricesFallback(trip.Origin, trip.Destination)
		source = "estimated"
	}

	ai := services.GetAIClient()
	flightSummary := services.ExtractFlightSummary(snippet)
	if ai != nil {
		if reformatted, err := ai.SummarizeFlights(ctx, trip, snippet); err != nil {
			log.Printf("⚠️  Flight summary reformatting failed: %v — showing raw snippet", err)
		} else {
			flightSummary = services.ExtractFlightSummary(reformatted)
		}
	}

	// ── Itinerary ─────────────────────────────────────────────────────────────
	var itinerary string
	if ai != nil {
		itinerary, err = ai.GenerateItinerary(ctx, trip)
		if err != nil {
			log.Printf("⚠️  Itinerary generation failed: %v — using fallback text", err)
			warnings = append(warnings, "Itinerary generation unavailable: showing basic suggestions")
			itinerary = services.FallbackItinerary(trip)
		}
	} else {
		itinerary = services.FallbackItinerary(trip)
	}

	// ── Extract + enrich ──────────────────────────────────────────────────────
	activities := services.ExtractActivities(itinerary)
	if len(activities) == 0 {
		// extraction miss, not an error: the itinerary text is still shown
		warnings = append(warnings, "No structured activities found in the itinerary")
	}
	var geo services.Geocoder
	if gc := services.GetGeocoder(); gc != nil {
		geo = gc
	}
	activities = services.EnrichActivities(ctx, geo, activities, trip.Destination)

	// ── Render + persist ──────────────────────────────────────────────────────
	pdfBytes, err := services.GeneratePDFBytes(services.PDFData{
		Trip:          trip,
		FlightSummary: flightSummary,
		Itinerary:     itinerary,
		Activities:    activities,
		IsEstimated:   source == "estimated",
	})
	if err != nil {
		log.Printf("❌ PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	interestsJSON, _ := json.Marshal(trip.Interests)
	activitiesJSON, _ := json.Marshal(activities)

	planID := uuid.New().String()
	if err := database.SavePlan(&database.Plan{
		ID:             planID,
		Origin:         trip.Origin,
		Destination:    trip.Destination,
		StartDate:      trip.StartDate.Format("2006-01-02"),
		EndDate:        trip.EndDate.Format("2006-01-02"),
		Budget:         string(trip.Budget),
		InterestsJSON:  string(interestsJSON),
		FlightSummary:  flightSummary,
		Itinerary:      itinerary,
		ActivitiesJSON: string(activitiesJSON),
		Source:         source,
		PDFData:        pdfBytes,
	}); err != nil {
		log.Printf("❌ Failed to save plan: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save plan"})
		return
	}

	log.Printf("✅ Plan %s generated: %d activities, source=%s", planID, len(activities), source)

	c.JSON(http.StatusOK, PlanResponse{
		PlanID:        planID,
		FlightSummary: flightSummary,
		Itinerary:     itinerary,
		Activities:    activities,
		Source:        source,
		PDFURL:        "/api/download/" + planID,
		Warnings:      warnings,
	})
}

// externalStatus maps a services error to the HTTP status for cases where
// no fallback can salvage the request.
func externalStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrExternalService):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
