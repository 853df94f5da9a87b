package marketplace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dealgrid/dealgrid-go/httpclient"
)

const ordersPath = "/orders"

// OrderService manages the user's orders. Order history is cursor-paginated
// by the API.
type OrderService struct {
	client httpclient.Client
}

func newOrderService(client httpclient.Client, _ settings) *OrderService {
	return &OrderService{client: client}
}

// OrderPage is one cursor page of order history.
type OrderPage struct {
	Items      []Order
	NextCursor string
}

// List returns one page of order history starting at cursor. An empty
// cursor starts from the most recent order.
func (s *OrderService) List(ctx context.Context, cursor string, limit int) (OrderPage, error) {
	raw, err := s.client.GetCursorPage(ctx, ordersPath, httpclient.CursorRequest{
		Cursor: cursor,
		Limit:  limit,
	})
	if err != nil {
		return OrderPage{}, err
	}

	items, err := decodeAs[[]Order](raw.Items)
	if err != nil {
		return OrderPage{}, err
	}
	return OrderPage{Items: items, NextCursor: raw.NextCursor}, nil
}

// Get returns a single order by id.
func (s *OrderService) Get(ctx context.Context, id string) (Order, error) {
	raw, err := s.client.Get(ctx, ordersPath+"/"+id, nil)
	if err != nil {
		return Order{}, err
	}
	return decodeAs[Order](raw)
}

// Create places an order. The payload is validated client-side first, and
// the request carries an idempotency key so a retried POST cannot double-buy.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (Order, error) {
	if err := validate.Struct(input); err != nil {
		return Order{}, fmt.Errorf("invalid order: %w", err)
	}

	raw, err := s.client.Post(ctx, ordersPath, &httpclient.RequestOptions{
		Headers: map[string]string{"Idempotency-Key": uuid.NewString()},
		Body:    input,
	})
	if err != nil {
		return Order{}, err
	}
	return decodeAs[Order](raw)
}

// Cancel cancels a pending order.
func (s *OrderService) Cancel(ctx context.Context, id string) (Order, error) {
	raw, err := s.client.Post(ctx, ordersPath+"/"+id+"/cancel", nil)
	if err != nil {
		return Order{}, err
	}
	return decodeAs[Order](raw)
}
