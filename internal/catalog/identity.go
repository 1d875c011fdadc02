package catalog

import "github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"

// Identified is any backend record that carries the aliased id fields.
type Identified interface {
	IDAliases() (productID, mongoID, id models.FlexString)
}

// ResolveProductID returns the identifier of a product, cart line or wishlist
// entry. The backend populates product_id, _id or id depending on the
// endpoint; they are tried in exactly that order. Every caller that needs an
// identifier goes through here.
func ResolveProductID(v Identified) string {
	productID, mongoID, id := v.IDAliases()
	switch {
	case productID != "":
		return string(productID)
	case mongoID != "":
		return string(mongoID)
	default:
		return string(id)
	}
}
