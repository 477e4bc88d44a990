package sales

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"cobropos/m/domain"
	"cobropos/m/internal/database"
	"cobropos/m/internal/migrations"
	"cobropos/m/internal/store"
	"cobropos/m/internal/validation"
)

func ptr[T any](v T) *T { return &v }

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(database.DriverSQLite, "file:sales_"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := migrations.Run(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store.New(db)
}

func newTestService(t *testing.T, strict bool) (*Service, *store.Store, *fixedClock) {
	t.Helper()
	st := newTestStore(t)
	clock := &fixedClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := NewService(st, Options{Clock: clock.Now, Location: time.UTC, Strict: strict})
	return svc, st, clock
}

func createWidget(t *testing.T, st *store.Store, stock int64) domain.Product {
	t.Helper()
	p, err := st.CreateProduct(context.Background(), domain.ProductInput{
		PLU:             ptr(int64(1001)),
		Name:            ptr("Widget"),
		StockQty:        ptr(stock),
		CostPrice:       ptr(decimal.NewFromInt(5)),
		SalePrice:       ptr(decimal.NewFromInt(9)),
		Supplier:        ptr("Acme"),
		LastRestockDate: ptr("2024-02-01"),
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func TestSellProductAccumulatesPerDay(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newTestService(t, false)
	p := createWidget(t, st, 10)

	first, err := svc.SellProduct(ctx, p.ID, 3)
	if err != nil {
		t.Fatalf("first sale: %v", err)
	}
	if !first.Created || first.Sale.UnitsOut != 3 || !first.Sale.RevenueGenerated.Equal(decimal.NewFromInt(27)) {
		t.Fatalf("unexpected first result: %+v", first)
	}
	if first.Sale.Date != "2024-03-01" || first.Sale.ItemKind != domain.KindProduct || first.Sale.ItemName != "Widget" {
		t.Fatalf("unexpected sale row: %+v", first.Sale)
	}

	second, err := svc.SellProduct(ctx, p.ID, 2)
	if err != nil {
		t.Fatalf("second sale: %v", err)
	}
	if second.Created || second.Sale.ID != first.Sale.ID {
		t.Fatalf("expected update of row %d, got %+v", first.Sale.ID, second)
	}
	if second.Sale.UnitsOut != 5 || !second.Sale.RevenueGenerated.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("expected 5 units / 45, got %d / %s", second.Sale.UnitsOut, second.Sale.RevenueGenerated)
	}

	got, err := st.GetProduct(ctx, p.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.StockQty != 5 {
		t.Fatalf("expected stock 5, got %d", got.StockQty)
	}
}

func TestSellProductKeepsFirstNameOfTheDay(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newTestService(t, false)
	p := createWidget(t, st, 10)

	if _, err := svc.SellProduct(ctx, p.ID, 1); err != nil {
		t.Fatalf("sale: %v", err)
	}
	if _, err := st.UpdateProduct(ctx, p.ID, domain.ProductPatch{Name: ptr("Widget XL")}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	res, err := svc.SellProduct(ctx, p.ID, 1)
	if err != nil {
		t.Fatalf("sale: %v", err)
	}
	if res.Sale.ItemName != "Widget" {
		t.Fatalf("expected snapshot name, got %q", res.Sale.ItemName)
	}
}

func TestSalesOnDifferentDaysAreSeparateRows(t *testing.T) {
	ctx := context.Background()
	svc, st, clock := newTestService(t, false)
	p := createWidget(t, st, 10)

	if _, err := svc.SellProduct(ctx, p.ID, 1); err != nil {
		t.Fatalf("day one: %v", err)
	}
	clock.Set(time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC))
	res, err := svc.SellProduct(ctx, p.ID, 1)
	if err != nil {
		t.Fatalf("day two: %v", err)
	}
	if !res.Created || res.Sale.Date != "2024-03-02" {
		t.Fatalf("expected new row for the second day, got %+v", res)
	}

	rows, err := svc.List(ctx, store.SalesFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].Date != "2024-03-02" {
		t.Fatalf("expected two rows newest first, got %+v", rows)
	}
	one, err := svc.List(ctx, store.SalesFilter{Day: "2024-03-01"})
	if err != nil || len(one) != 1 {
		t.Fatalf("day filter: %+v %v", one, err)
	}
	rng, err := svc.List(ctx, store.SalesFilter{From: "2024-03-02", To: "2024-03-31"})
	if err != nil || len(rng) != 1 || rng[0].Date != "2024-03-02" {
		t.Fatalf("range filter: %+v %v", rng, err)
	}
}

func TestSalesDayFollowsLocation(t *testing.T) {
	st := newTestStore(t)
	loc := time.FixedZone("CST", -6*60*60)
	svc := NewService(st, Options{
		Clock:    func() time.Time { return time.Date(2024, 3, 2, 3, 0, 0, 0, time.UTC) },
		Location: loc,
	})
	if got := svc.Today(); got != "2024-03-01" {
		t.Fatalf("expected 2024-03-01 in CST, got %s", got)
	}
}

func TestSameIDDifferentKindsDoNotCollide(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newTestService(t, false)
	p := createWidget(t, st, 10)

	s, err := st.CreateService(ctx, domain.ServiceInput{
		Name:        ptr("Impresion"),
		Description: ptr("Impresion a color"),
		Commission:  ptr(decimal.NewFromInt(15)),
	})
	if err != nil {
		t.Fatalf("create service: %v", err)
	}
	if s.ID != p.ID {
		t.Fatalf("fixture expects equal ids, got product %d service %d", p.ID, s.ID)
	}

	if _, err := svc.SellProduct(ctx, p.ID, 1); err != nil {
		t.Fatalf("sell product: %v", err)
	}
	res, err := svc.SellService(ctx, s.ID)
	if err != nil {
		t.Fatalf("sell service: %v", err)
	}
	if !res.Created || res.Sale.ItemKind != domain.KindService || !res.Sale.RevenueGenerated.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("unexpected service sale: %+v", res)
	}
}

func TestFractionalRevenueIsExact(t *testing.T) {
	tests := []struct {
		name  string
		price string
		units []int64
		want  string
	}{
		{name: "product 19.99 one by one", price: "19.99", units: []int64{1, 1, 1}, want: "59.97"},
		{name: "product 19.99 mixed", price: "19.99", units: []int64{2, 5, 3}, want: "199.9"},
		{name: "product 0.1", price: "0.1", units: []int64{1, 1, 1}, want: "0.3"},
		{name: "product 0.07", price: "0.07", units: []int64{3, 7, 11, 13}, want: "2.38"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, st, _ := newTestService(t, false)
			p, err := st.CreateProduct(ctx, domain.ProductInput{
				PLU:             ptr(int64(1)),
				Name:            ptr("Hoja"),
				StockQty:        ptr(int64(100)),
				CostPrice:       ptr(decimal.RequireFromString("0.01")),
				SalePrice:       ptr(decimal.RequireFromString(tt.price)),
				Supplier:        ptr("Acme"),
				LastRestockDate: ptr("2024-02-01"),
			})
			if err != nil {
				t.Fatalf("create product: %v", err)
			}

			var res Result
			for _, u := range tt.units {
				if res, err = svc.SellProduct(ctx, p.ID, u); err != nil {
					t.Fatalf("sale: %v", err)
				}
			}
			want := decimal.RequireFromString(tt.want)
			if !res.Sale.RevenueGenerated.Equal(want) {
				t.Fatalf("expected %s, got %s", want, res.Sale.RevenueGenerated)
			}
			rows, err := svc.List(ctx, store.SalesFilter{})
			if err != nil || len(rows) != 1 || !rows[0].RevenueGenerated.Equal(want) {
				t.Fatalf("stored revenue: %+v %v", rows, err)
			}
		})
	}
}

func TestServiceCommissionSumsExactly(t *testing.T) {
	tests := []struct {
		commission string
		sales      int
		want       string
	}{
		{"0.1", 3, "0.3"},
		{"19.99", 7, "139.93"},
		{"0.01", 10, "0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.commission, func(t *testing.T) {
			ctx := context.Background()
			svc, st, _ := newTestService(t, false)
			s, err := st.CreateService(ctx, domain.ServiceInput{
				Name:        ptr("Copia"),
				Description: ptr("Copia simple"),
				Commission:  ptr(decimal.RequireFromString(tt.commission)),
			})
			if err != nil {
				t.Fatalf("create service: %v", err)
			}
			var res Result
			for i := 0; i < tt.sales; i++ {
				if res, err = svc.SellService(ctx, s.ID); err != nil {
					t.Fatalf("sale: %v", err)
				}
			}
			if res.Sale.UnitsOut != int64(tt.sales) || !res.Sale.RevenueGenerated.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("expected %d units / %s, got %d / %s", tt.sales, tt.want, res.Sale.UnitsOut, res.Sale.RevenueGenerated)
			}
		})
	}
}

func TestSellOrder(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newTestService(t, false)

	o, err := st.CreateOrder(ctx, domain.OrderInput{
		Date:         ptr("2024-02-28"),
		Description:  ptr("Lona 2x1"),
		CustomerName: ptr("Ana"),
		Price:        ptr(decimal.RequireFromString("350.5")),
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.SellOrder(ctx, o.ID); err != nil {
			t.Fatalf("sell order: %v", err)
		}
	}
	rows, err := svc.List(ctx, store.SalesFilter{Kind: domain.KindOrder})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].UnitsOut != 2 || !rows[0].RevenueGenerated.Equal(decimal.NewFromInt(701)) {
		t.Fatalf("unexpected order aggregate: %+v", rows)
	}
	if rows[0].ItemName != "Lona 2x1" {
		t.Fatalf("expected description as name, got %q", rows[0].ItemName)
	}
}

func TestSellMissingItemWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, false)

	if _, err := svc.SellProduct(ctx, 42, 1); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("product: expected not found, got %v", err)
	}
	if _, err := svc.SellService(ctx, 42); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("service: expected not found, got %v", err)
	}
	if _, err := svc.SellOrder(ctx, 42); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("order: expected not found, got %v", err)
	}
	rows, _ := svc.List(ctx, store.SalesFilter{})
	if len(rows) != 0 {
		t.Fatalf("expected no sales rows, got %+v", rows)
	}
}

func TestPermissiveModeAllowsOverselling(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newTestService(t, false)
	p := createWidget(t, st, 2)

	if _, err := svc.SellProduct(ctx, p.ID, 5); err != nil {
		t.Fatalf("oversell: %v", err)
	}
	got, _ := st.GetProduct(ctx, p.ID)
	if got.StockQty != -3 {
		t.Fatalf("expected stock -3, got %d", got.StockQty)
	}
}

func TestStrictModeGuards(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newTestService(t, true)
	p := createWidget(t, st, 2)

	tests := []struct {
		units int64
		want  string
	}{
		{0, "gt=0"},
		{-1, "gt=0"},
		{3, "lte=2"},
	}
	for _, tt := range tests {
		_, err := svc.SellProduct(ctx, p.ID, tt.units)
		var verr *validation.Error
		if !errors.As(err, &verr) || verr.Fields["units"] != tt.want {
			t.Fatalf("units %d: expected units=%s, got %v", tt.units, tt.want, err)
		}
	}
	got, _ := st.GetProduct(ctx, p.ID)
	if got.StockQty != 2 {
		t.Fatalf("expected untouched stock, got %d", got.StockQty)
	}
	rows, _ := svc.List(ctx, store.SalesFilter{})
	if len(rows) != 0 {
		t.Fatalf("expected no sales rows, got %+v", rows)
	}
	if _, err := svc.SellProduct(ctx, p.ID, 2); err != nil {
		t.Fatalf("exact stock sale: %v", err)
	}
}

func TestConcurrentSalesAreNotLost(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newTestService(t, false)
	p := createWidget(t, st, 100)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.SellProduct(ctx, p.ID, 2)
			if err != nil {
				t.Errorf("sale: %v", err)
				return
			}
			if res.Created {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected exactly one creating sale, got %d", created)
	}
	rows, _ := svc.List(ctx, store.SalesFilter{})
	if len(rows) != 1 || rows[0].UnitsOut != 2*workers {
		t.Fatalf("expected one row with %d units, got %+v", 2*workers, rows)
	}
	got, _ := st.GetProduct(ctx, p.ID)
	if got.StockQty != 100-2*workers {
		t.Fatalf("expected stock %d, got %d", 100-2*workers, got.StockQty)
	}
}

func TestRecordRejectsUnknownKind(t *testing.T) {
	st := newTestStore(t)
	_, _, err := Record(context.Background(), st, Entry{Kind: "coupon", ItemID: 1, Day: "2024-03-01"})
	if err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestLocalLockerSerializesKey(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	unlock, _ := l.Lock(ctx, "product:1:2024-03-01")
	acquired := make(chan struct{})
	done := make(chan struct{})
	go func() {
		u, _ := l.Lock(ctx, "product:1:2024-03-01")
		close(acquired)
		u()
		close(done)
	}()

	// A different key is independent.
	other, _ := l.Lock(ctx, "product:2:2024-03-01")
	other()

	select {
	case <-acquired:
		t.Fatalf("second holder acquired the key while it was locked")
	case <-time.After(50 * time.Millisecond):
	}
	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("second holder never acquired the key")
	}
	<-done

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.keys) != 0 {
		t.Fatalf("expected released keys to be dropped, got %d", len(l.keys))
	}
}

func TestWriteWorkbook(t *testing.T) {
	rows := []domain.DailySale{
		{ID: 1, ItemKind: domain.KindProduct, ItemID: 7, ItemName: "Widget", Date: "2024-03-01", UnitsOut: 5, RevenueGenerated: decimal.NewFromInt(45)},
	}
	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	header, _ := f.GetCellValue(exportSheet, "A1")
	name, _ := f.GetCellValue(exportSheet, "D2")
	units, _ := f.GetCellValue(exportSheet, "E2")
	if header != "Fecha" || name != "Widget" || units != "5" {
		t.Fatalf("unexpected cells %q %q %q", header, name, units)
	}
}
