package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"cobropos/m/domain"
	"cobropos/m/internal/store"
	"cobropos/m/internal/validation"
)

// Clock returns the current instant; tests pin it.
type Clock func() time.Time

type Options struct {
	Locker   Locker
	Clock    Clock
	Location *time.Location
	// Strict rejects non-positive quantities and sales above the available stock.
	Strict bool
	Logger *logrus.Logger
}

// Service is the "cobrar" use case for every sellable kind.
type Service struct {
	store  *store.Store
	locker Locker
	now    Clock
	loc    *time.Location
	strict bool
	logger *logrus.Logger
}

// Result is the aggregate row after the sale and whether this sale created it.
type Result struct {
	Sale    domain.DailySale
	Created bool
}

func NewService(st *store.Store, opts Options) *Service {
	s := &Service{
		store:  st,
		locker: opts.Locker,
		now:    opts.Clock,
		loc:    opts.Location,
		strict: opts.Strict,
		logger: opts.Logger,
	}
	if s.locker == nil {
		s.locker = NewLocalLocker()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	return s
}

// Today is the sales day for the current instant in the configured location.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(domain.DateLayout)
}

// SellProduct takes units out of stock and adds salePrice × units to today's row.
func (s *Service) SellProduct(ctx context.Context, id, units int64) (Result, error) {
	if s.strict && units <= 0 {
		return Result{}, validation.NewFieldError("units", "gt=0")
	}
	return s.sell(ctx, domain.KindProduct, id, func(tx *store.Store) (Entry, error) {
		p, err := tx.GetProduct(ctx, id)
		if err != nil {
			return Entry{}, err
		}
		if s.strict && p.StockQty < units {
			return Entry{}, validation.NewFieldError("units", fmt.Sprintf("lte=%d", p.StockQty))
		}
		if err := tx.AdjustProductStock(ctx, id, -units); err != nil {
			return Entry{}, err
		}
		return Entry{
			ItemName: p.Name,
			Units:    units,
			Revenue:  p.SalePrice.Mul(decimal.NewFromInt(units)),
		}, nil
	})
}

// SellService records one unit at the service's commission.
func (s *Service) SellService(ctx context.Context, id int64) (Result, error) {
	return s.sell(ctx, domain.KindService, id, func(tx *store.Store) (Entry, error) {
		svc, err := tx.GetService(ctx, id)
		if err != nil {
			return Entry{}, err
		}
		return Entry{ItemName: svc.Name, Units: 1, Revenue: svc.Commission}, nil
	})
}

// SellOrder records one unit at the order's price. The finished flag is not checked.
func (s *Service) SellOrder(ctx context.Context, id int64) (Result, error) {
	return s.sell(ctx, domain.KindOrder, id, func(tx *store.Store) (Entry, error) {
		o, err := tx.GetOrder(ctx, id)
		if err != nil {
			return Entry{}, err
		}
		return Entry{ItemName: o.Description, Units: 1, Revenue: o.Price}, nil
	})
}

// List returns the aggregated rows matching f.
func (s *Service) List(ctx context.Context, f store.SalesFilter) ([]domain.DailySale, error) {
	return s.store.ListDailySales(ctx, f)
}

func (s *Service) sell(ctx context.Context, kind domain.ItemKind, id int64, load func(tx *store.Store) (Entry, error)) (Result, error) {
	key := Entry{Kind: kind, ItemID: id, Day: s.Today()}
	unlock, err := s.locker.Lock(ctx, key.key())
	if err != nil {
		return Result{}, fmt.Errorf("lock %s: %w", key.key(), err)
	}
	defer unlock()

	var res Result
	err = s.store.InTx(ctx, func(tx *store.Store) error {
		e, err := load(tx)
		if err != nil {
			return err
		}
		e.Kind, e.ItemID, e.Day = key.Kind, key.ItemID, key.Day
		sale, created, err := Record(ctx, tx, e)
		if err != nil {
			return err
		}
		res = Result{Sale: sale, Created: created}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"kind":    kind,
		"item_id": id,
		"day":     key.Day,
		"units":   res.Sale.UnitsOut,
		"created": res.Created,
	}).Debug("sale recorded")
	return res, nil
}
