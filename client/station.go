package client

import (
	"context"

	"github.com/cuisine-de-lin/order-board-api/models"
)

// Station ties a board to the API client, implementing the optimistic
// submit-then-reconcile protocol an order-taking terminal follows.
type Station struct {
	board *Board
	api   *APIClient
}

// NewStation creates a station around an existing board and API client.
func NewStation(board *Board, api *APIClient) *Station {
	return &Station{board: board, api: api}
}

// Board exposes the local order view for rendering and event application.
func (s *Station) Board() *Board {
	return s.board
}

// SubmitDraft inserts the draft optimistically, sends it to the server, and
// reconciles the response into the local entry. On a network failure the
// optimistic entry stays visible in its last-known-good state and is not
// retried; the next snapshot fetch converges it.
func (s *Station) SubmitDraft(ctx context.Context, customerName string, payment models.PaymentType) (models.Order, error) {
	sub, err := s.board.Submit(customerName, payment)
	if err != nil {
		return models.Order{}, err
	}

	server, err := s.api.SubmitOrder(ctx, sub.Order)
	if err != nil {
		return sub.Order, err
	}

	s.board.Reconcile(sub, server)
	return server, nil
}

// Complete marks an order done locally first, then on the server. The
// broadcast echo is a no-op thanks to idempotent completion.
func (s *Station) Complete(ctx context.Context, id int) error {
	s.board.ApplyCompleted(id)
	return s.api.CompleteOrder(ctx, id)
}

// Resync refetches the full list and replaces local confirmed state,
// the recovery path after a missed broadcast or reconnect.
func (s *Station) Resync(ctx context.Context) error {
	orders, err := s.api.FetchOrders(ctx)
	if err != nil {
		return err
	}
	s.board.ApplySnapshot(orders)
	return nil
}

// EndOfDay archives the current list and then resets the server, in that
// order; reset is destructive and unrecoverable from the store.
func (s *Station) EndOfDay(ctx context.Context, date string) error {
	orders := make([]models.Order, 0, len(s.board.Orders()))
	itemsStats := map[string]int{}
	extrasStats := map[string]int{}
	for _, lo := range s.board.Orders() {
		orders = append(orders, lo.Order)
		for _, line := range lo.Order.Items {
			itemsStats[line.Name]++
			for _, extra := range line.Extras {
				extrasStats[extra]++
			}
		}
	}

	if _, _, err := s.api.SaveDaily(ctx, models.DailyReport{
		Date:        date,
		ItemsStats:  itemsStats,
		ExtrasStats: extrasStats,
		Orders:      orders,
	}); err != nil {
		return err
	}

	if err := s.api.ResetOrders(ctx); err != nil {
		return err
	}

	s.board.ApplyReset()
	return nil
}
