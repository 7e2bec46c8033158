package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/modatienda/boutique_api/internal/cache"
	"github.com/modatienda/boutique_api/internal/config"
	"github.com/modatienda/boutique_api/internal/models"
)

// KPIStore persists daily snapshots.
type KPIStore interface {
	GetLatest() (*models.KPISnapshot, error)
	Insert(snap *models.KPISnapshot) error
	Update(snap *models.KPISnapshot) error
}

// DashboardReport is the full payload behind the admin dashboard.
type DashboardReport struct {
	KPIs            models.KPISet        `json:"kpis"`
	SalesByCategory []models.GroupTotal  `json:"salesByCategory"`
	SalesByGender   []models.GroupTotal  `json:"salesByGender"`
	SalesBySize     []models.GroupTotal  `json:"salesBySize"`
	MonthlyTrend    []models.MonthBucket `json:"monthlyTrend"`
	TopSellers      []models.Product     `json:"topSellers"`
	LowRotation     []models.Product     `json:"lowRotation"`
	GeneratedAt     time.Time            `json:"generatedAt"`
}

// KPIService computes dashboard aggregates in memory and maintains the
// daily snapshot row.
type KPIService struct {
	sales     SaleStore
	products  CatalogStore
	snapshots KPIStore
	reports   *cache.ReportCache
	cfg       config.ReportConfig
}

// NewKPIService constructs a KPIService. reports may be nil to disable the
// Redis layer.
func NewKPIService(sales SaleStore, products CatalogStore, snapshots KPIStore, reports *cache.ReportCache, cfg config.ReportConfig) *KPIService {
	if cfg.LowStockThreshold <= 0 {
		cfg.LowStockThreshold = 10
	}
	if cfg.LowRotationThreshold <= 0 {
		cfg.LowRotationThreshold = 5
	}
	if cfg.TrendMonths <= 0 {
		cfg.TrendMonths = 6
	}
	if cfg.TopSellerLimit <= 0 {
		cfg.TopSellerLimit = 10
	}
	return &KPIService{
		sales:     sales,
		products:  products,
		snapshots: snapshots,
		reports:   reports,
		cfg:       cfg,
	}
}

// GetDashboard returns the dashboard report for today, serving a cached copy
// when one exists. A fresh build upserts the daily snapshot as a side
// effect, then caches the report until end of day.
func (s *KPIService) GetDashboard(ctx context.Context) (*DashboardReport, error) {
	today := time.Now().Format("2006-01-02")

	if s.reports != nil {
		var cached DashboardReport
		hit, err := s.reports.Get(ctx, today, &cached)
		if err != nil {
			log.Warn().Err(err).Msg("report cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	report, err := s.buildReport()
	if err != nil {
		return nil, err
	}

	// Snapshot upsert and cache write are side effects of the dashboard
	// load; neither failure blocks the response.
	if err := s.upsertSnapshot(report.KPIs, today); err != nil {
		log.Warn().Err(err).Msg("kpi snapshot upsert failed")
	}
	if s.reports != nil {
		if err := s.reports.Set(ctx, today, report); err != nil {
			log.Warn().Err(err).Msg("report cache write failed")
		}
	}
	return report, nil
}

// RefreshSnapshot recomputes the headline KPIs and upserts today's snapshot
// row. Used by the periodic worker.
func (s *KPIService) RefreshSnapshot() error {
	now := time.Now()
	monthSales, err := s.sales.List(CurrentMonthFilter(now))
	if err != nil {
		return err
	}
	products, err := s.products.GetAll(models.ProductFilter{})
	if err != nil {
		return err
	}
	kpis := ComputeKPIs(monthSales, products, s.cfg.LowStockThreshold)
	return s.upsertSnapshot(kpis, now.Format("2006-01-02"))
}

func (s *KPIService) buildReport() (*DashboardReport, error) {
	now := time.Now()

	monthSales, err := s.sales.List(CurrentMonthFilter(now))
	if err != nil {
		return nil, err
	}
	products, err := s.products.GetAll(models.ProductFilter{})
	if err != nil {
		return nil, err
	}

	trendStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -s.cfg.TrendMonths, 0)
	trendSales, err := s.sales.List(models.SaleFilter{From: trendStart})
	if err != nil {
		return nil, err
	}

	topSellers, err := s.products.TopSellers(s.cfg.TopSellerLimit)
	if err != nil {
		return nil, err
	}
	lowRotation, err := s.products.LowRotation(s.cfg.LowRotationThreshold)
	if err != nil {
		return nil, err
	}

	return &DashboardReport{
		KPIs:            ComputeKPIs(monthSales, products, s.cfg.LowStockThreshold),
		SalesByCategory: SalesByCategory(monthSales),
		SalesByGender:   SalesByGender(monthSales),
		SalesBySize:     SalesBySize(monthSales),
		MonthlyTrend:    BucketSalesByMonth(trendSales),
		TopSellers:      topSellers,
		LowRotation:     lowRotation,
		GeneratedAt:     now,
	}, nil
}

// upsertSnapshot reads the latest snapshot and either updates it in place
// (same date string) or inserts a new row. The read and the write are
// separate statements; concurrent dashboard loads can race here, which is
// tolerated for a cached metric — the second computation wins.
func (s *KPIService) upsertSnapshot(kpis models.KPISet, date string) error {
	latest, err := s.snapshots.GetLatest()
	if err != nil {
		return err
	}

	if latest != nil && latest.Date == date {
		latest.TotalSales = kpis.TotalSales
		latest.SaleCount = kpis.SaleCount
		latest.TotalStock = kpis.TotalStock
		latest.LowStockCount = kpis.LowStockCount
		latest.AvgRotation = kpis.AvgRotation
		latest.ProductCount = kpis.ProductCount
		return s.snapshots.Update(latest)
	}

	return s.snapshots.Insert(&models.KPISnapshot{
		Date:          date,
		TotalSales:    kpis.TotalSales,
		SaleCount:     kpis.SaleCount,
		TotalStock:    kpis.TotalStock,
		LowStockCount: kpis.LowStockCount,
		AvgRotation:   kpis.AvgRotation,
		ProductCount:  kpis.ProductCount,
	})
}
