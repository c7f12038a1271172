package services

import "reseller/internal/models"

// AnalyticsService serves the profit dashboard: a precomputed snapshot plus
// the live order figures.
type AnalyticsService struct {
	snapshot models.AnalyticsReport
	orders   *OrderService
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(snapshot models.AnalyticsReport, orders *OrderService) *AnalyticsService {
	return &AnalyticsService{snapshot: snapshot, orders: orders}
}

// Report returns a copy of the snapshot with the live figures attached.
func (s *AnalyticsService) Report() (models.AnalyticsReport, error) {
	report := s.snapshot
	report.Monthly = append([]models.MonthlyFigures(nil), s.snapshot.Monthly...)
	report.TopProducts = append([]models.ProductFigures(nil), s.snapshot.TopProducts...)
	report.Tips = append([]models.Tip(nil), s.snapshot.Tips...)

	if s.orders != nil {
		live, err := s.orders.Stats()
		if err != nil {
			return models.AnalyticsReport{}, err
		}
		report.Live = live
	}
	return report, nil
}
