package service

import (
	"context"
	"sort"

	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/models"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/session"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/internal/utils"
	"github.com/Sumanweb2025/Sumanfrontend-sub000/pkg/storeapi"
)

// OrderService reads the shopper's orders.
type OrderService struct {
	client *storeapi.Client
}

// NewOrderService constructs an OrderService.
func NewOrderService(client *storeapi.Client) *OrderService {
	return &OrderService{client: client}
}

// List returns the orders, newest first.
func (s *OrderService) List(ctx context.Context, sess session.Session) ([]models.Order, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	orders, err := s.client.ListOrders(ctx, auth.Token)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Get returns one order with its timeline in chronological order.
func (s *OrderService) Get(ctx context.Context, sess session.Session, orderID string) (*models.Order, error) {
	auth, ok := session.Auth(sess)
	if !ok {
		return nil, utils.ErrUnauthorized
	}
	order, err := s.client.GetOrder(ctx, auth.Token, orderID)
	if err != nil {
		if storeapi.IsNotFound(err) {
			return nil, utils.ErrOrderNotFound
		}
		return nil, err
	}
	sort.SliceStable(order.Timeline, func(i, j int) bool {
		return order.Timeline[i].Timestamp.Before(order.Timeline[j].Timestamp)
	})
	return order, nil
}
