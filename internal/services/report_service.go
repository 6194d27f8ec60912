package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"inventaris/internal/models"
	"inventaris/internal/repositories"
)

// RevenueReport aggregates final order prices per ISO week ("2024-W07") and
// per month ("2024-02").
type RevenueReport struct {
	Weekly  map[string]int64 `json:"weekly"`
	Monthly map[string]int64 `json:"monthly"`
}

// ProductCount is one row of the top-products report: how many orders
// contained the product, keyed by the name snapshot stored on the order.
type ProductCount struct {
	Name   string `json:"name"`
	Orders int    `json:"orders"`
}

// HourBucket is one row of the peak-hours report.
type HourBucket struct {
	Label  string `json:"label"`
	Orders int    `json:"orders"`
}

// Hour-of-day buckets for the peak-hours report.
var (
	hourBucketLabels = []string{"0-4 AM", "5-8 AM", "9-12 PM", "1-4 PM", "5-8 PM", "9-12 AM"}
	hourBucketEdges  = []int{0, 5, 9, 13, 17, 21, 24}
)

// ReportService derives read-only aggregates from the order log and the
// catalog. It runs against eventually-consistent snapshots and needs no
// coordination with checkout.
type ReportService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
}

// NewReportService creates a new ReportService.
func NewReportService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Revenue sums final order prices per week and per month.
func (s *ReportService) Revenue(ctx context.Context) (*RevenueReport, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for revenue report: %w", err)
	}

	report := &RevenueReport{
		Weekly:  make(map[string]int64),
		Monthly: make(map[string]int64),
	}
	for _, order := range orders {
		report.Weekly[isoWeek(order.CreatedAt)] += order.TotalPrice
		report.Monthly[order.CreatedAt.Format("2006-01")] += order.TotalPrice
	}
	return report, nil
}

// TopProducts returns the products that appeared in the most orders, best
// first, at most limit rows. Counting uses the name snapshot on the order
// items, so renamed or deleted products still report under the name they
// were sold as.
func (s *ReportService) TopProducts(ctx context.Context, limit int) ([]ProductCount, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for top products report: %w", err)
	}

	counts := make(map[string]int)
	for _, order := range orders {
		for _, item := range order.Items {
			counts[item.ProductName]++
		}
	}

	ranking := make([]ProductCount, 0, len(counts))
	for name, n := range counts {
		ranking = append(ranking, ProductCount{Name: name, Orders: n})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Orders != ranking[j].Orders {
			return ranking[i].Orders > ranking[j].Orders
		}
		return ranking[i].Name < ranking[j].Name
	})
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}

// LowStock returns the products closest to running out.
func (s *ReportService) LowStock(limit int) ([]models.Product, error) {
	return s.productRepo.LowStock(limit)
}

// PeakHours buckets order timestamps by hour of day.
func (s *ReportService) PeakHours(ctx context.Context) ([]HourBucket, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders for peak hours report: %w", err)
	}

	buckets := make([]HourBucket, len(hourBucketLabels))
	for i, label := range hourBucketLabels {
		buckets[i] = HourBucket{Label: label}
	}
	for _, order := range orders {
		hour := order.CreatedAt.Hour()
		for i := 0; i < len(buckets); i++ {
			if hour >= hourBucketEdges[i] && hour < hourBucketEdges[i+1] {
				buckets[i].Orders++
				break
			}
		}
	}
	return buckets, nil
}

func isoWeek(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
