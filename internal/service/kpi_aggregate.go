package service

import (
	"math"
	"sort"

	"github.com/modatienda/boutique_api/internal/models"
)

// ComputeKPIs derives the headline metrics from the month's sales and the
// full product list. lowStockThreshold is the stock level below which a
// product counts as low stock.
func ComputeKPIs(sales []models.Sale, products []models.Product, lowStockThreshold int) models.KPISet {
	var set models.KPISet
	for i := range sales {
		set.TotalSales += sales[i].Total
	}
	set.SaleCount = len(sales)

	var rotationSum float64
	for i := range products {
		set.TotalStock += products[i].Quantity
		if products[i].Quantity < lowStockThreshold {
			set.LowStockCount++
		}
		rotationSum += products[i].MonthlyRotation
	}
	set.ProductCount = len(products)
	if len(products) > 0 {
		set.AvgRotation = round2(rotationSum / float64(len(products)))
	}
	return set
}

// groupLineItems accumulates line item subtotals and quantities keyed by a
// product attribute. Groups appear in first-seen order. Lines whose product
// snapshot is missing fall into the fallback group.
func groupLineItems(sales []models.Sale, fallback string, key func(*models.Product) string) []models.GroupTotal {
	index := make(map[string]int)
	groups := []models.GroupTotal{}

	for i := range sales {
		for j := range sales[i].LineItems {
			line := &sales[i].LineItems[j]
			name := fallback
			if line.Product != nil {
				if k := key(line.Product); k != "" {
					name = k
				}
			}
			idx, ok := index[name]
			if !ok {
				idx = len(groups)
				index[name] = idx
				groups = append(groups, models.GroupTotal{Name: name})
			}
			groups[idx].Total += line.Subtotal
			groups[idx].Quantity += line.Quantity
		}
	}
	return groups
}

// SalesByCategory groups the month's line items by product category.
func SalesByCategory(sales []models.Sale) []models.GroupTotal {
	return groupLineItems(sales, "sin categoria", func(p *models.Product) string { return p.Category })
}

// SalesByGender groups the month's line items by product gender.
func SalesByGender(sales []models.Sale) []models.GroupTotal {
	return groupLineItems(sales, "sin genero", func(p *models.Product) string { return string(p.Gender) })
}

// SalesBySize groups the month's line items by product size.
func SalesBySize(sales []models.Sale) []models.GroupTotal {
	return groupLineItems(sales, "sin talla", func(p *models.Product) string { return p.Size })
}

// BucketSalesByMonth buckets whole sales by calendar month (YYYY-MM keys),
// oldest month first.
func BucketSalesByMonth(sales []models.Sale) []models.MonthBucket {
	index := make(map[string]int)
	buckets := []models.MonthBucket{}

	for i := range sales {
		month := sales[i].SoldAt.Format("2006-01")
		idx, ok := index[month]
		if !ok {
			idx = len(buckets)
			index[month] = idx
			buckets = append(buckets, models.MonthBucket{Month: month})
		}
		buckets[idx].Total += sales[i].Total
		buckets[idx].Count++
	}

	sort.Slice(buckets, func(a, b int) bool { return buckets[a].Month < buckets[b].Month })
	return buckets
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
