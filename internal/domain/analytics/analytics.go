// Package analytics owns the derived-metric formulas for seller and
// platform dashboards. It is the single canonical implementation: every
// surface that shows these numbers calls into this package rather than
// re-deriving them. All functions are pure and operate on raw records.
package analytics

import (
	"math"
	"sort"
	"time"

	"soko/internal/domain/entity"
)

// SellerReport aggregates one seller's listings.
type SellerReport struct {
	SellerID      string  `json:"seller_id"`
	TotalListings int     `json:"total_listings"`
	ActiveListings int    `json:"active_listings"`
	SoldItems     int     `json:"sold_items"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalViews    int64   `json:"total_views"`
	AveragePrice  int64   `json:"average_price"`
	DonationCount int     `json:"donation_count"`
}

// Overview aggregates the whole listing collection.
type Overview struct {
	TotalListings  int     `json:"total_listings"`
	ActiveListings int     `json:"active_listings"`
	SoldItems      int     `json:"sold_items"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalViews     int64   `json:"total_views"`
	AveragePrice   int64   `json:"average_price"`
	DonationCount  int     `json:"donation_count"`
}

// UserStats aggregates the user collection.
type UserStats struct {
	Users         int `json:"users"`
	Sellers       int `json:"sellers"`
	Admins        int `json:"admins"`
	NewLast30Days int `json:"new_last_30_days"`
	// ActiveSellers is the number of distinct owners with at least one
	// active listing, regardless of their stored role.
	ActiveSellers int `json:"active_sellers"`
}

// Performance holds platform conversion metrics.
type Performance struct {
	// ConversionRate is soldItems / totalListings * 100.
	ConversionRate    float64 `json:"conversion_rate"`
	AvgViewsPerListing int64  `json:"avg_views_per_listing"`
	AvgRevenuePerSale float64 `json:"avg_revenue_per_sale"`
}

// CategoryCount is one row of the category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryStats is the per-category breakdown, counts descending.
type CategoryStats struct {
	Top                []CategoryCount `json:"top"`
	DistinctCategories int             `json:"distinct_categories"`
}

// MonthBucket is one calendar month of growth figures.
type MonthBucket struct {
	Month   string  `json:"month"` // formatted as 2006-01
	Created int     `json:"created"`
	Sold    int     `json:"sold"`
	Revenue float64 `json:"revenue"`
}

// PlatformReport is the full admin dashboard payload.
type PlatformReport struct {
	Overview      Overview      `json:"overview"`
	UserStats     UserStats     `json:"user_stats"`
	Performance   Performance   `json:"performance"`
	CategoryStats CategoryStats `json:"category_stats"`
	// MonthlyGrowth covers the trailing six calendar months, oldest first,
	// including the month containing now.
	MonthlyGrowth []MonthBucket `json:"monthly_growth"`
}

const trailingMonths = 6

// ComputeSeller rolls up the given listings, all of which must belong to
// sellerID. Empty input yields a zero report, never a division fault.
func ComputeSeller(sellerID string, listings []*entity.Listing) SellerReport {
	report := SellerReport{SellerID: sellerID}
	var priceSum float64

	for _, l := range listings {
		report.TotalListings++
		report.TotalViews += l.Views
		priceSum += l.Price

		switch l.Status {
		case entity.StatusActive:
			report.ActiveListings++
		case entity.StatusSold:
			report.SoldItems++
			report.TotalRevenue += l.Price
		}

		if l.IsDonation {
			report.DonationCount++
		}
	}

	report.AveragePrice = roundedAverage(priceSum, report.TotalListings)

	return report
}

// ComputePlatform rolls up the whole collection for the admin dashboard.
// now anchors the trailing-month window and the new-user cutoff; topN bounds
// the category breakdown.
func ComputePlatform(listings []*entity.Listing, users []*entity.User, now time.Time, topN int) PlatformReport {
	report := PlatformReport{}
	var priceSum float64
	categories := make(map[string]int)
	activeOwners := make(map[string]struct{})

	for _, l := range listings {
		report.Overview.TotalListings++
		report.Overview.TotalViews += l.Views
		priceSum += l.Price

		switch l.Status {
		case entity.StatusActive:
			report.Overview.ActiveListings++
			activeOwners[l.Owner] = struct{}{}
		case entity.StatusSold:
			report.Overview.SoldItems++
			report.Overview.TotalRevenue += l.Price
		}

		if l.IsDonation {
			report.Overview.DonationCount++
		}
		if l.Category != "" {
			categories[l.Category]++
		}
	}

	report.Overview.AveragePrice = roundedAverage(priceSum, report.Overview.TotalListings)
	report.UserStats = computeUserStats(users, now)
	report.UserStats.ActiveSellers = len(activeOwners)
	report.Performance = computePerformance(report.Overview)
	report.CategoryStats = computeCategoryStats(categories, topN)
	report.MonthlyGrowth = computeMonthlyGrowth(listings, now)

	return report
}

func computeUserStats(users []*entity.User, now time.Time) UserStats {
	stats := UserStats{}
	cutoff := now.AddDate(0, 0, -30)

	for _, u := range users {
		switch u.Role {
		case entity.RoleSeller:
			stats.Sellers++
		case entity.RoleAdmin:
			stats.Admins++
		default:
			stats.Users++
		}

		if u.CreatedAt.After(cutoff) {
			stats.NewLast30Days++
		}
	}

	return stats
}

func computePerformance(o Overview) Performance {
	perf := Performance{}

	if o.TotalListings > 0 {
		perf.ConversionRate = float64(o.SoldItems) / float64(o.TotalListings) * 100
		perf.AvgViewsPerListing = int64(math.Round(float64(o.TotalViews) / float64(o.TotalListings)))
	}
	if o.SoldItems > 0 {
		perf.AvgRevenuePerSale = o.TotalRevenue / float64(o.SoldItems)
	}

	return perf
}

func computeCategoryStats(categories map[string]int, topN int) CategoryStats {
	rows := make([]CategoryCount, 0, len(categories))
	for category, count := range categories {
		rows = append(rows, CategoryCount{Category: category, Count: count})
	}

	// Descending by count; ties broken by name so output is deterministic.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}

		return rows[i].Category < rows[j].Category
	})

	stats := CategoryStats{DistinctCategories: len(rows)}
	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	stats.Top = rows

	return stats
}

func computeMonthlyGrowth(listings []*entity.Listing, now time.Time) []MonthBucket {
	buckets := make([]MonthBucket, trailingMonths)
	index := make(map[string]int, trailingMonths)

	// Oldest to newest, ending with the month containing now.
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < trailingMonths; i++ {
		month := start.AddDate(0, i-(trailingMonths-1), 0)
		key := month.Format("2006-01")
		buckets[i] = MonthBucket{Month: key}
		index[key] = i
	}

	for _, l := range listings {
		if i, ok := index[l.CreatedAt.Format("2006-01")]; ok {
			buckets[i].Created++
		}
		if l.SoldAt != nil {
			if i, ok := index[l.SoldAt.Format("2006-01")]; ok {
				buckets[i].Sold++
				buckets[i].Revenue += l.Price
			}
		}
	}

	return buckets
}

func roundedAverage(sum float64, count int) int64 {
	if count == 0 {
		return 0
	}

	return int64(math.Round(sum / float64(count)))
}
