// Package stats computes the read-only aggregations exposed under
// /statistics. All functions are pure: they operate on snapshots of the
// order ledger (and the product catalog for monetary totals) handed to them
// by the caller.
package stats

import (
	"sort"

	"orderdesk/internal/model"
)

// TopLimit caps the number of entries returned by the top-N aggregations.
const TopLimit = 10

// ClientOrders is one row of the top-clients ranking.
type ClientOrders struct {
	ClientID    string `json:"clientId"`
	TotalOrders int    `json:"totalOrders"`
}

// ProductQuantity is one row of the top-products ranking.
type ProductQuantity struct {
	ProductID     string `json:"productId"`
	TotalQuantity int    `json:"totalQuantity"`
}

// TopClients groups orders by client, counts them, and returns at most limit
// rows sorted by count descending. Ties keep the order in which clients first
// appear in the ledger.
func TopClients(orders []model.Order, limit int) []ClientOrders {
	counts := make(map[string]int)
	rows := make([]ClientOrders, 0)
	for _, o := range orders {
		if _, seen := counts[o.ClientID]; !seen {
			rows = append(rows, ClientOrders{ClientID: o.ClientID})
		}
		counts[o.ClientID]++
	}
	for i := range rows {
		rows[i].TotalOrders = counts[rows[i].ClientID]
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalOrders > rows[j].TotalOrders
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// TopProducts expands every order's items, sums quantities per product, and
// returns at most limit rows sorted by total quantity descending. Ties keep
// first-appearance order.
func TopProducts(orders []model.Order, limit int) []ProductQuantity {
	totals := make(map[string]int)
	rows := make([]ProductQuantity, 0)
	for _, o := range orders {
		for _, item := range o.Items {
			if _, seen := totals[item.ProductID]; !seen {
				rows = append(rows, ProductQuantity{ProductID: item.ProductID})
			}
			totals[item.ProductID] += item.Quantity
		}
	}
	for i := range rows {
		rows[i].TotalQuantity = totals[rows[i].ProductID]
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalQuantity > rows[j].TotalQuantity
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// TotalValue sums quantity times current product price over every item of
// every order. Orders are valued at today's prices, not the price at order
// time; items whose product no longer exists contribute nothing.
func TotalValue(orders []model.Order, products []model.Product) float64 {
	prices := make(map[string]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	var total float64
	for _, o := range orders {
		for _, item := range o.Items {
			total += float64(item.Quantity) * prices[item.ProductID]
		}
	}
	return total
}
