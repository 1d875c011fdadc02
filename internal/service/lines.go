package service

import (
	"github.com/shopspring/decimal"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/catalog"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
)

// lineProduct rebuilds the product behind a cart or wishlist line. Lines may
// embed the product, repeat its fields flat, or both; the embedded product
// wins field by field and the line's own id wins over the product's.
func lineProduct(id string, embedded *models.Product, name string, price models.FlexFloat, image, imageURL string) models.Product {
	var p models.Product
	if embedded != nil {
		p = *embedded
	}
	if p.Name == "" {
		p.Name = name
	}
	if !p.Price.Valid {
		p.Price = price
	}
	if p.Image == "" {
		p.Image = image
	}
	if p.ImageURL == "" {
		p.ImageURL = imageURL
	}
	p.ProductID = models.FlexString(id)
	return p
}

func cartItemProduct(it models.CartItem) models.Product {
	return lineProduct(catalog.ResolveProductID(it), it.Product, string(it.Name), it.Price, string(it.Image), string(it.ImageURL))
}

func wishlistItemProduct(it models.WishlistItem) models.Product {
	return lineProduct(catalog.ResolveProductID(it), it.Product, string(it.Name), it.Price, string(it.Image), string(it.ImageURL))
}

// BuildCart merges lines of the same product and computes exact totals.
func BuildCart(items []models.CartItem, a *catalog.Assembler) models.Cart {
	cart := models.Cart{Items: []models.CartLine{}, Subtotal: decimal.Zero}
	index := make(map[string]int, len(items))

	for _, it := range items {
		p := cartItemProduct(it)
		id := string(p.ProductID)
		if id == "" {
			continue
		}
		qty := it.Quantity.Or(1)
		if qty < 1 {
			continue
		}

		if i, ok := index[id]; ok {
			line := &cart.Items[i]
			line.Quantity += qty
			line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			continue
		}

		unit := decimal.NewFromFloat(p.Price.Or(0))
		index[id] = len(cart.Items)
		cart.Items = append(cart.Items, models.CartLine{
			ProductID: id,
			Name:      p.Name,
			ImageURL:  a.ImageURL(p),
			UnitPrice: unit,
			Quantity:  qty,
			LineTotal: unit.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	for _, line := range cart.Items {
		cart.TotalQuantity += line.Quantity
		cart.Subtotal = cart.Subtotal.Add(line.LineTotal)
	}
	return cart
}
