package models

import "encoding/json"

// Product is a catalog record as the storefront backend returns it.
// The client never mutates it; each fetch yields a fresh snapshot.
//
// Identifiers arrive under one of three keys depending on the endpoint, so all
// three are kept. Use catalog.ResolveProductID to read the identifier.
type Product struct {
	ProductID   FlexString  `json:"product_id,omitempty"`
	MongoID     FlexString  `json:"_id,omitempty"`
	ID          FlexString  `json:"id,omitempty"`
	Name        string      `json:"name"`
	Brand       string      `json:"brand"`
	Category    string      `json:"category"`
	Price       FlexFloat   `json:"price"`
	Rating      FlexFloat   `json:"rating"`
	Piece       FlexInt     `json:"piece"`
	Description string      `json:"description"`
	Tags        FlexStrings `json:"tags,omitempty"`
	Image       string      `json:"image,omitempty"`
	ImageURL    string      `json:"imageUrl,omitempty"`
}

// IDAliases returns the three identifier fields in their documented order.
func (p Product) IDAliases() (productID, mongoID, id FlexString) {
	return p.ProductID, p.MongoID, p.ID
}

// UnmarshalJSON implements json.Unmarshaler. Text fields of the wrong JSON
// type fall back to "" so one malformed field never drops the record.
func (p *Product) UnmarshalJSON(b []byte) error {
	type plain Product
	var raw struct {
		plain
		Name        FlexString `json:"name"`
		Brand       FlexString `json:"brand"`
		Category    FlexString `json:"category"`
		Description FlexString `json:"description"`
		Image       FlexString `json:"image,omitempty"`
		ImageURL    FlexString `json:"imageUrl,omitempty"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Product(raw.plain)
	p.Name = string(raw.Name)
	p.Brand = string(raw.Brand)
	p.Category = string(raw.Category)
	p.Description = string(raw.Description)
	p.Image = string(raw.Image)
	p.ImageURL = string(raw.ImageURL)
	return nil
}
