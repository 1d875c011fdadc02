package catalog

import (
	"net/url"
	"strings"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

// Membership answers whether a product is in the shopper's wishlist and how
// many of it sit in the cart. A nil Membership means an anonymous shopper.
type Membership interface {
	InWishlist(productID string) bool
	CartQuantity(productID string) int
}

// ProductView is the render-ready form of a product card.
type ProductView struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Brand               string   `json:"brand"`
	Category            string   `json:"category"`
	Price               float64  `json:"price"`
	Rating              *float64 `json:"rating,omitempty"`
	Description         string   `json:"description"`
	Tags                []string `json:"tags"`
	ImageURL            string   `json:"imageUrl"`
	PlaceholderImageURL string   `json:"placeholderImageUrl"`
	InWishlist          bool     `json:"inWishlist"`
	CartQuantity        int      `json:"cartQuantity"`
	InStock             bool     `json:"inStock"`
	Piece               int      `json:"piece"`
}

// Assembler turns products into ProductViews.
type Assembler struct {
	// StaticBaseURL is prefixed to "/uploads/<image>" for products that have
	// no absolute imageUrl.
	StaticBaseURL string
	// PlaceholderURL is shown when a product has no image at all, and by the
	// client when the resolved image fails to load.
	PlaceholderURL string
}

// NewAssembler constructs an Assembler.
func NewAssembler(staticBaseURL, placeholderURL string) *Assembler {
	return &Assembler{
		StaticBaseURL:  strings.TrimSuffix(staticBaseURL, "/"),
		PlaceholderURL: placeholderURL,
	}
}

// Assemble decorates every product with its id, membership and stock flags
// and its image URLs.
func (a *Assembler) Assemble(products []models.Product, m Membership) []ProductView {
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, a.View(p, m))
	}
	return out
}

// View decorates a single product.
func (a *Assembler) View(p models.Product, m Membership) ProductView {
	id := ResolveProductID(p)
	piece := p.Piece.Or(0)

	v := ProductView{
		ID:                  id,
		Name:                p.Name,
		Brand:               p.Brand,
		Category:            p.Category,
		Price:               p.Price.Or(0),
		Description:         p.Description,
		Tags:                append([]string{}, p.Tags...),
		ImageURL:            a.ImageURL(p),
		PlaceholderImageURL: a.PlaceholderURL,
		InStock:             piece > 0,
		Piece:               piece,
	}
	if p.Rating.Valid {
		r := p.Rating.Value
		v.Rating = &r
	}
	if m != nil && id != "" {
		v.InWishlist = m.InWishlist(id)
		v.CartQuantity = m.CartQuantity(id)
	}
	return v
}

// ImageURL returns the product's imageUrl when present, otherwise a URL under
// the static uploads route built from image, otherwise the placeholder.
func (a *Assembler) ImageURL(p models.Product) string {
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return a.FallbackImageURL(p.Image)
}

// FallbackImageURL builds the static asset URL for a relative image reference.
func (a *Assembler) FallbackImageURL(image string) string {
	image = strings.TrimSpace(image)
	if image == "" {
		return a.PlaceholderURL
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	image = strings.TrimPrefix(image, "/")
	image = strings.TrimPrefix(image, "uploads/")
	return a.StaticBaseURL + "/uploads/" + image
}

// UploadURL builds the static uploads URL for a client supplied image path.
// Unlike FallbackImageURL it never passes an absolute URL through: the result
// always lives under StaticBaseURL + "/uploads/". ok is false for empty paths,
// anything carrying a scheme or query, and dot segments.
func (a *Assembler) UploadURL(image string) (string, bool) {
	image = strings.TrimSpace(image)
	image = strings.TrimPrefix(image, "/")
	image = strings.TrimPrefix(image, "uploads/")
	if image == "" || strings.ContainsAny(image, ":\\?#") {
		return "", false
	}

	segments := strings.Split(image, "/")
	for i, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return "", false
		}
		segments[i] = url.PathEscape(seg)
	}
	return a.StaticBaseURL + "/uploads/" + strings.Join(segments, "/"), true
}
