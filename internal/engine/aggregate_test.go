package engine

import (
	"testing"
	"time"

	"valuator/types"

	"github.com/shopspring/decimal"
)

func order(ticker string, y int, m, d int) types.Order {
	return types.NewOrder(ticker, types.Date(y, time.Month(m), d), decimal.RequireFromString("1000"))
}

func TestGroupOrders(t *testing.T) {
	tests := []struct {
		name   string
		orders []types.Order
		want   map[string]int // ticker -> lot count, plus order below
		order  []string
	}{
		{
			name:   "empty",
			orders: nil,
			want:   map[string]int{},
			order:  nil,
		},
		{
			name: "groups keep first-seen ticker order",
			orders: []types.Order{
				order("SHOP", 2025, 10, 6),
				order("PLTR", 2025, 10, 7),
				order("SHOP", 2025, 10, 13),
			},
			want:  map[string]int{"SHOP": 2, "PLTR": 1},
			order: []string{"SHOP", "PLTR"},
		},
		{
			name: "identical orders stay distinct lots",
			orders: []types.Order{
				order("SHOP", 2025, 10, 6),
				order("SHOP", 2025, 10, 6),
			},
			want:  map[string]int{"SHOP": 2},
			order: []string{"SHOP"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			groups := groupOrders(tc.orders)

			if len(groups) != len(tc.order) {
				t.Fatalf("got %d groups, want %d", len(groups), len(tc.order))
			}
			for i, grp := range groups {
				if grp.ticker != tc.order[i] {
					t.Fatalf("group %d is %s, want %s", i, grp.ticker, tc.order[i])
				}
				if len(grp.orders) != tc.want[grp.ticker] {
					t.Fatalf("group %s has %d lots, want %d", grp.ticker, len(grp.orders), tc.want[grp.ticker])
				}
			}
		})
	}
}

func TestGroupOrdersPreservesWithinTickerOrder(t *testing.T) {
	orders := []types.Order{
		order("SHOP", 2025, 10, 6),
		order("PLTR", 2025, 10, 7),
		order("SHOP", 2025, 10, 13),
	}

	groups := groupOrders(orders)
	shop := groups[0]
	if !shop.orders[0].TradeDate.Equal(types.Date(2025, 10, 6)) ||
		!shop.orders[1].TradeDate.Equal(types.Date(2025, 10, 13)) {
		t.Fatalf("within-ticker order not preserved: %v", shop.orders)
	}
}

func TestValidateOrders(t *testing.T) {
	orders := []types.Order{
		order("SHOP", 2025, 10, 6),
		types.NewOrder("", types.Date(2025, 10, 6), decimal.RequireFromString("1000")),
		types.NewOrder("PLTR", types.Date(2025, 10, 7), decimal.Zero),
		order("NVDA", 2025, 10, 13),
	}

	valid, rejected := validateOrders(orders)

	if len(valid) != 2 {
		t.Fatalf("got %d valid orders, want 2", len(valid))
	}
	if valid[0].Ticker != "SHOP" || valid[1].Ticker != "NVDA" {
		t.Fatalf("valid orders out of order: %v", valid)
	}
	if len(rejected) != 2 {
		t.Fatalf("got %d rejections, want 2", len(rejected))
	}
	if rejected[0].Reason == "" || rejected[1].Reason == "" {
		t.Fatalf("rejections missing reasons: %v", rejected)
	}
	if rejected[1].Order.Ticker != "PLTR" {
		t.Fatalf("got rejected ticker %q, want PLTR", rejected[1].Order.Ticker)
	}
}
