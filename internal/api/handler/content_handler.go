package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tourhub/marketplace/internal/core/domain"
	"github.com/tourhub/marketplace/internal/core/ports"
)

// ContentHandler serves listings, destinations and blog posts.
type ContentHandler struct {
	service ports.ContentService
}

func NewContentHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

type listingsResponse struct {
	Listings []domain.Listing `json:"listings"`
}

type listingResponse struct {
	Listing *domain.Listing `json:"listing"`
}

type destinationsResponse struct {
	Destinations []domain.Destination `json:"destinations"`
}

type postsResponse struct {
	Posts []domain.BlogPost `json:"posts"`
}

type postResponse struct {
	Post *domain.BlogPost `json:"post"`
}

// ListListings handles GET /api/listings.
//
// @Summary      List published listings
// @Tags         content
// @Produce      json
// @Param        destination  query     string  false  "Destination slug"
// @Param        featured     query     bool    false  "Only featured listings"
// @Success      200          {object}  listingsResponse
// @Failure      400          {object}  errorResponse
// @Failure      500          {object}  errorResponse
// @Router       /api/listings [get]
func (h *ContentHandler) ListListings(c echo.Context) error {
	filter := domain.ListingFilter{Destination: c.QueryParam("destination")}
	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.NewValidationError("featured must be a boolean")
		}
		filter.FeaturedOnly = featured
	}

	listings, err := h.service.ListListings(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listingsResponse{Listings: nonNil(listings)})
}

// GetListing handles GET /api/listings/:slug.
//
// @Summary      Get a listing
// @Tags         content
// @Produce      json
// @Param        slug  path      string  true  "Listing slug"
// @Success      200   {object}  listingResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/listings/{slug} [get]
func (h *ContentHandler) GetListing(c echo.Context) error {
	listing, err := h.service.GetListing(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listingResponse{Listing: listing})
}

// ListDestinations handles GET /api/destinations.
//
// @Summary      List destinations
// @Tags         content
// @Produce      json
// @Success      200  {object}  destinationsResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/destinations [get]
func (h *ContentHandler) ListDestinations(c echo.Context) error {
	destinations, err := h.service.ListDestinations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, destinationsResponse{Destinations: nonNil(destinations)})
}

// ListBlogPosts handles GET /api/blog.
//
// @Summary      List blog posts
// @Tags         content
// @Produce      json
// @Success      200  {object}  postsResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/blog [get]
func (h *ContentHandler) ListBlogPosts(c echo.Context) error {
	posts, err := h.service.ListBlogPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postsResponse{Posts: nonNil(posts)})
}

// GetBlogPost handles GET /api/blog/:slug.
//
// @Summary      Get a blog post
// @Tags         content
// @Produce      json
// @Param        slug  path      string  true  "Post slug"
// @Success      200   {object}  postResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/blog/{slug} [get]
func (h *ContentHandler) GetBlogPost(c echo.Context) error {
	post, err := h.service.GetBlogPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, postResponse{Post: post})
}

// ProviderListings handles GET /api/provider/listings.
//
// @Summary      List my listings (service providers)
// @Tags         content
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  listingsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/provider/listings [get]
func (h *ContentHandler) ProviderListings(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	listings, err := h.service.ProviderListings(c.Request().Context(), id.RecordID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listingsResponse{Listings: nonNil(listings)})
}

// nonNil makes empty collections render as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
