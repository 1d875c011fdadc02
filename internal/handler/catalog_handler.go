package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/catalog"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/middleware"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/service"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

var errInvalidPrice = errors.New("INVALID_PRICE")

// CatalogHandler serves catalog listings, product details and images.
type CatalogHandler struct {
	catalogService *service.CatalogService
	images         *storeapi.Client
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, images *storeapi.Client) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, images: images}
}

// GetSources lists the catalog sources.
func (h *CatalogHandler) GetSources(c *gin.Context) {
	utils.Success(c, 200, "Catalog sources retrieved successfully", gin.H{
		"sources":  h.catalogService.Sources(),
		"sortKeys": catalog.SortKeys,
	})
}

// GetCatalog handles GET /v1/catalog/:source
//
// Query: category, brand (repeatable or comma separated), minPrice, maxPrice,
// q, sort, page, state (fingerprint from the previous response).
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	state, err := parseViewState(c)
	if err != nil {
		utils.Error(c, 400, "INVALID_PRICE", "minPrice and maxPrice must be numbers with minPrice <= maxPrice")
		return
	}

	view, err := h.catalogService.View(c.Request.Context(), middleware.GetSession(c), c.Param("source"), state, c.Query("state"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeView(c, view)
}

// RetryCatalog handles POST /v1/catalog/:source/retry
func (h *CatalogHandler) RetryCatalog(c *gin.Context) {
	state, err := parseViewState(c)
	if err != nil {
		utils.Error(c, 400, "INVALID_PRICE", "minPrice and maxPrice must be numbers with minPrice <= maxPrice")
		return
	}

	view, err := h.catalogService.Retry(c.Request.Context(), middleware.GetSession(c), c.Param("source"), state)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeView(c, view)
}

func (h *CatalogHandler) writeView(c *gin.Context, view *service.CatalogView) {
	if view.Status != service.ViewReady {
		utils.ErrorWithData(c, http.StatusBadGateway, utils.ErrCatalogUnavailable.Error(), view.Error, view)
		return
	}
	r := view.Result
	utils.SuccessWithPagination(c, 200, "Catalog retrieved successfully", view, r.Page, r.PageSize, r.TotalItems)
}

// GetProduct handles GET /v1/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	v, err := h.catalogService.Product(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", v)
}

// GetImage handles GET /v1/images/*path
//
// Redirects to the static upload when it loads and to the placeholder
// otherwise. Only paths under the static uploads route are probed; absolute
// URLs and dot segments go straight to the placeholder. The placeholder itself
// is never probed, so a broken placeholder cannot cause a redirect loop.
func (h *CatalogHandler) GetImage(c *gin.Context) {
	assembler := h.catalogService.Assembler()

	target, ok := assembler.UploadURL(c.Param("path"))
	if !ok || !h.images.ImageAvailable(c.Request.Context(), target) {
		target = assembler.PlaceholderURL
	}
	c.Header("Cache-Control", "public, max-age=300")
	c.Redirect(http.StatusFound, target)
}

// parseViewState reads the listing controls from the query string.
func parseViewState(c *gin.Context) (catalog.ViewState, error) {
	filter := catalog.FilterState{
		Categories: queryList(c, "category"),
		Brands:     queryList(c, "brand"),
		Search:     c.Query("q"),
	}

	var err error
	if filter.Price.Min, err = queryFloat(c, "minPrice"); err != nil {
		return catalog.ViewState{}, err
	}
	if filter.Price.Max, err = queryFloat(c, "maxPrice"); err != nil {
		return catalog.ViewState{}, err
	}
	if filter.Price.Min != nil && filter.Price.Max != nil && *filter.Price.Min > *filter.Price.Max {
		return catalog.ViewState{}, errInvalidPrice
	}

	state := catalog.NewViewState().WithFilter(filter).WithSort(catalog.ParseSortKey(c.Query("sort")))
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			state = state.WithPage(n)
		}
	}
	return state, nil
}

// queryList accepts both ?k=a&k=b and ?k=a,b.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func queryFloat(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errInvalidPrice
	}
	return &v, nil
}
