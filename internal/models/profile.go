package models

// Profile is the signed-in customer's profile.
type Profile struct {
	ID        FlexString `json:"id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Addresses []Address  `json:"addresses,omitempty"`
}
