package seed

import (
	"math"
	"math/rand"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/google/uuid"
)

var categories = []string{"cotton", "silk", "linen", "wool", "denim", "velvet", "lace", "jersey"}

var statuses = []domain.OrderStatus{
	domain.OrderStatusPending,
	domain.OrderStatusApproved,
	domain.OrderStatusRejected,
	domain.OrderStatusProcessing,
	domain.OrderStatusShipped,
	domain.OrderStatusDelivered,
	domain.OrderStatusCancelled,
}

type Options struct {
	Count int
	// Days spreads creation times over the Days days ending at Now.
	Days int
	Now  time.Time
	Seed int64
}

// Generate returns Count sample orders, oldest first. The same options
// always produce the same orders.
func Generate(opts Options) []domain.Order {
	if opts.Count <= 0 {
		return []domain.Order{}
	}
	if opts.Days <= 0 {
		opts.Days = 1
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	span := time.Duration(opts.Days) * 24 * time.Hour
	start := opts.Now.Add(-span)
	step := span / time.Duration(opts.Count)
	if step <= 0 {
		step = 1
	}

	orders := make([]domain.Order, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		id := uuid.Must(uuid.NewRandomFromReader(rng))
		createdAt := start.Add(step*time.Duration(i+1) - time.Duration(rng.Int63n(int64(step))))

		products := make([]domain.LineItem, 0, 4)
		total := 0.0
		for n := 1 + rng.Intn(4); n > 0; n-- {
			item := domain.LineItem{
				Price:    cents(5 + rng.Float64()*95),
				Quantity: 1 + rng.Intn(5),
			}
			// roughly one item in eight comes without a category
			if rng.Intn(8) != 0 {
				item.Category = categories[rng.Intn(len(categories))]
			}
			total += item.Price * float64(item.Quantity)
			products = append(products, item)
		}
		total = cents(total)

		status := statuses[rng.Intn(len(statuses))]
		orders = append(orders, domain.Order{
			ID:         id.String(),
			Status:     status,
			CreatedAt:  createdAt,
			Total:      total,
			PaidAmount: paid(rng, status, total),
			Products:   products,
		})
	}
	return orders
}

func paid(rng *rand.Rand, status domain.OrderStatus, total float64) float64 {
	switch status {
	case domain.OrderStatusRejected, domain.OrderStatusCancelled:
		return 0
	case domain.OrderStatusPending:
		return cents(total * rng.Float64())
	default:
		return total
	}
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}
