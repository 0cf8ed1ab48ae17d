package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// exportOrder is the document shape of an order in a JSON export.
type exportOrder struct {
	ID         string           `json:"id"`
	Status     string           `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	Total      float64          `json:"total"`
	PaidAmount float64          `json:"paidAmount"`
	Products   []exportLineItem `json:"products"`
}

type exportLineItem struct {
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category *string `json:"category,omitempty"`
}

// DecodeOrders reads a JSON array of order documents.
func DecodeOrders(r io.Reader) ([]domain.Order, error) {
	var docs []exportOrder
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode orders export: %w", err)
	}

	orders := make([]domain.Order, 0, len(docs))
	for _, d := range docs {
		products := make([]domain.LineItem, 0, len(d.Products))
		for _, p := range d.Products {
			li := domain.LineItem{Price: p.Price, Quantity: p.Quantity}
			if p.Category != nil {
				li.Category = *p.Category
			}
			products = append(products, li)
		}
		orders = append(orders, domain.Order{
			ID:         d.ID,
			Status:     domain.OrderStatus(d.Status),
			CreatedAt:  d.CreatedAt,
			Total:      d.Total,
			PaidAmount: d.PaidAmount,
			Products:   products,
		})
	}
	return orders, nil
}

// EncodeOrders writes orders as a JSON export readable by DecodeOrders.
func EncodeOrders(w io.Writer, orders []domain.Order) error {
	docs := make([]exportOrder, 0, len(orders))
	for _, o := range orders {
		products := make([]exportLineItem, 0, len(o.Products))
		for _, p := range o.Products {
			item := exportLineItem{Price: p.Price, Quantity: p.Quantity}
			if p.Category != "" {
				c := p.Category
				item.Category = &c
			}
			products = append(products, item)
		}
		docs = append(docs, exportOrder{
			ID:         o.ID,
			Status:     string(o.Status),
			CreatedAt:  o.CreatedAt,
			Total:      o.Total,
			PaidAmount: o.PaidAmount,
			Products:   products,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}

type opener func(ctx context.Context) (io.ReadCloser, error)

// exportSource reads a whole JSON export on every fetch and filters it in memory.
type exportSource struct {
	name string
	open opener
}

func (s *exportSource) Name() string {
	return s.name
}

func (s *exportSource) FetchOrders(ctx context.Context, since time.Time) ([]domain.Order, error) {
	logger := zerolog.Ctx(ctx)

	body, err := s.open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open export of %s: %w", s.name, err)
	}
	defer func() {
		if err := body.Close(); err != nil {
			logger.Warn().Err(err).Str("source", s.name).Msg("failed to close export")
		}
	}()

	orders, err := DecodeOrders(body)
	if err != nil {
		return nil, err
	}
	return filterSince(orders, since), nil
}
