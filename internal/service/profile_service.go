package service

import (
	"context"
	"strings"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/session"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

// ProfileUpdate is the editable part of a profile.
type ProfileUpdate struct {
	Name      string           `json:"name" binding:"required"`
	Email     string           `json:"email" binding:"required,email"`
	Phone     string           `json:"phone"`
	Addresses []models.Address `json:"addresses" binding:"dive"`
}

// ProfileService reads and updates the shopper's profile.
type ProfileService struct {
	client *storeapi.Client
}

// NewProfileService constructs a ProfileService.
func NewProfileService(client *storeapi.Client) *ProfileService {
	return &ProfileService{client: client}
}

// Get returns the profile.
func (s *ProfileService) Get(ctx context.Context, sess session.Session) (*models.Profile, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	return s.client.GetProfile(ctx, auth.Token)
}

// Update replaces the editable fields of the profile.
func (s *ProfileService) Update(ctx context.Context, sess session.Session, upd ProfileUpdate) (*models.Profile, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	p := models.Profile{
		Name:      strings.TrimSpace(upd.Name),
		Email:     strings.ToLower(strings.TrimSpace(upd.Email)),
		Phone:     strings.TrimSpace(upd.Phone),
		Addresses: upd.Addresses,
	}
	return s.client.UpdateProfile(ctx, auth.Token, p)
}
