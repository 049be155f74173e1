package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
	"github.com/mahyar-jbr/pet-ai-assistant/internal/usecase"
	"github.com/rs/zerolog"
)

const serviceName = "pet-ai-assistant"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommendations *usecase.RecommendationService
	profiles        *usecase.ProfileService
	logger          zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(recommendations *usecase.RecommendationService, profiles *usecase.ProfileService, logger zerolog.Logger) *Handler {
	return &Handler{
		recommendations: recommendations,
		profiles:        profiles,
		logger:          logger.With().Str("component", "http").Logger(),
	}
}

// RecommendationsResponse is the body of both recommendation endpoints
type RecommendationsResponse struct {
	*domain.RecommendationSet
	Display map[string]usecase.TagDisplay `json:"display"`
}

// ProductsResponse is the body of the product listing
type ProductsResponse struct {
	CatalogVersion uint64                    `json:"catalogVersion"`
	Sort           string                    `json:"sort"`
	ResultsLabel   string                    `json:"resultsLabel"`
	Products       []domain.CanonicalProduct `json:"products"`
}

// CompareResponse is the body of the comparison endpoint
type CompareResponse struct {
	A        string                     `json:"a"`
	B        string                     `json:"b"`
	Sections []domain.ComparisonSection `json:"sections"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	status := "healthy"
	var version uint64
	products := 0
	if catalog := h.recommendations.Catalog(); catalog != nil {
		version, products = catalog.Version, catalog.Len()
	} else {
		status = "loading"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         status,
		"service":        serviceName,
		"version":        "1.0.0",
		"catalogVersion": version,
		"products":       products,
	})
}

// CreatePet stores a new pet profile
func (h *Handler) CreatePet(c *gin.Context) {
	var profile domain.PetProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.respondError(c, domain.ErrInvalidRequest)
		return
	}

	created, err := h.profiles.Create(c.Request.Context(), profile)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetPet returns a stored pet profile
func (h *Handler) GetPet(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdatePet replaces a stored pet profile
func (h *Handler) UpdatePet(c *gin.Context) {
	var profile domain.PetProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.respondError(c, domain.ErrInvalidRequest)
		return
	}

	updated, err := h.profiles.Update(c.Request.Context(), c.Param("id"), profile)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePet removes a pet profile and its favorites
func (h *Handler) DeletePet(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PetRecommendations returns the recommendations for a stored pet profile
func (h *Handler) PetRecommendations(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.recommend(c, profile)
}

// Recommend returns the recommendations for a profile sent in the request body
func (h *Handler) Recommend(c *gin.Context) {
	var profile domain.PetProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.respondError(c, domain.ErrInvalidRequest)
		return
	}
	h.recommend(c, profile)
}

func (h *Handler) recommend(c *gin.Context, profile domain.PetProfile) {
	criterion, err := usecase.ParseSortCriterion(c.Query("sort"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	set, err := h.recommendations.Recommend(c.Request.Context(), profile, criterion)
	if err != nil {
		h.respondError(c, err)
		return
	}

	display := make(map[string]usecase.TagDisplay, len(set.Recommendations))
	for _, r := range set.Recommendations {
		display[r.Product.CompareID] = usecase.SplitTagsForDisplay(r.Product.Tags, profile)
	}
	c.JSON(http.StatusOK, RecommendationsResponse{RecommendationSet: set, Display: display})
}

// ListProducts returns the whole catalog snapshot
func (h *Handler) ListProducts(c *gin.Context) {
	criterion, err := usecase.ParseSortCriterion(c.Query("sort"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	products, version, err := h.recommendations.Products(c.Request.Context(), criterion)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProductsResponse{
		CatalogVersion: version,
		Sort:           string(criterion),
		ResultsLabel:   usecase.ResultsLabel(len(products)),
		Products:       products,
	})
}

// GetProduct returns one product by compareId
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.recommendations.Product(c.Request.Context(), c.Param("compareId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Compare returns the side-by-side comparison of products a and b.
// Missing ids are filled from the catalog listing. The same id twice, or an
// unknown id, yields no sections.
func (h *Handler) Compare(c *gin.Context) {
	ctx := c.Request.Context()
	a, b := c.Query("a"), c.Query("b")

	if a == "" || b == "" {
		products, _, err := h.recommendations.Products(ctx, usecase.SortDefault)
		if err != nil {
			h.respondError(c, err)
			return
		}
		a, b = usecase.SelectComparisonPair(products, a, b)
	}

	sections, err := h.recommendations.Compare(ctx, a, b)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CompareResponse{A: a, B: b, Sections: sections})
}

// Favorites lists the favorite products of a pet
func (h *Handler) Favorites(c *gin.Context) {
	favorites, err := h.profiles.Favorites(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// ToggleFavorite adds or removes a product from the favorites of a pet
func (h *Handler) ToggleFavorite(c *gin.Context) {
	favorite, favorites, err := h.profiles.ToggleFavorite(c.Request.Context(), c.Param("id"), c.Param("compareId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorite": favorite, "favorites": favorites})
}

// RefreshCatalog reloads the catalog snapshot from its sources
func (h *Handler) RefreshCatalog(c *gin.Context) {
	if err := h.recommendations.Refresh(c.Request.Context()); err != nil {
		h.respondError(c, err)
		return
	}
	catalog := h.recommendations.Catalog()
	c.JSON(http.StatusOK, gin.H{"catalogVersion": catalog.Version, "products": catalog.Len()})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	var cfgErr *domain.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": cfgErr.Error(), "fields": cfgErr.Fields})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrCatalogUnavailable), errors.Is(err, domain.ErrSourceFailure):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
