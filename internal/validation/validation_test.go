package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"cobropos/m/domain"
)

func ptr[T any](v T) *T { return &v }

func TestProductInputSchema(t *testing.T) {
	v := New()

	valid := domain.ProductInput{
		PLU:             ptr(int64(100)),
		Name:            ptr("Widget"),
		StockQty:        ptr(int64(0)),
		CostPrice:       ptr(decimal.NewFromInt(5)),
		SalePrice:       ptr(decimal.Zero),
		Supplier:        ptr("Acme"),
		LastRestockDate: ptr("2024-01-01"),
	}
	if err := v.Struct(valid); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(in *domain.ProductInput)
		field  string
		tag    string
	}{
		{"missing plu", func(in *domain.ProductInput) { in.PLU = nil }, "plu", "required"},
		{"negative plu", func(in *domain.ProductInput) { in.PLU = ptr(int64(-1)) }, "plu", "gte=0"},
		{"missing sale price", func(in *domain.ProductInput) { in.SalePrice = nil }, "salePrice", "required"},
		{"empty name", func(in *domain.ProductInput) { in.Name = ptr("") }, "name", "min=1"},
		{"bad date", func(in *domain.ProductInput) { in.LastRestockDate = ptr("01/02/2024") }, "lastRestockDate", "datetime=2006-01-02"},
	}
	for _, tc := range cases {
		in := valid
		tc.mutate(&in)
		err := v.Struct(in)
		var verr *Error
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected *Error, got %v", tc.name, err)
		}
		if verr.Fields[tc.field] != tc.tag {
			t.Fatalf("%s: expected %s=%s, got %v", tc.name, tc.field, tc.tag, verr.Fields)
		}
	}
}

func TestPatchAllowsPartialFields(t *testing.T) {
	v := New()
	if err := v.Struct(domain.OrderPatch{}); err != nil {
		t.Fatalf("empty patch should be valid, got %v", err)
	}
	if err := v.Struct(domain.OrderPatch{PhoneNumber: ptr("55-12")}); !IsValidationError(err) {
		t.Fatalf("non numeric phone should fail, got %v", err)
	}
}

func TestErrorHelpers(t *testing.T) {
	err := fmt.Errorf("create: %w", Duplicate("plu"))
	if !IsValidationError(err) {
		t.Fatalf("wrapped duplicate should be a validation error")
	}
	if got := NewFieldError("units", "gt=0").Error(); got != "el campo units no es válido (units: gt=0)" {
		t.Fatalf("unexpected message %q", got)
	}
}
