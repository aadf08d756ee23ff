package services

import (
	"context"
	"errors"
	"time"

	"fleetwatch-backend/internal/apperr"
	"fleetwatch-backend/internal/models"
	"fleetwatch-backend/internal/repository"
	"fleetwatch-backend/pkg/cache"
)

// topVehicleLimit bounds the vehicle ranking in the global report.
const topVehicleLimit = 5

const (
	// statsReportKey caches the assembled global report. Scoped reports are
	// a single count and not worth caching.
	statsReportKey = "stats:alerts:global"
	statsReportTTL = 30 * time.Second
)

// severityLabels and statusLabels pair the lower-cased report keys with the
// stored vocabulary they count.
var severityLabels = []struct{ key, stored string }{
	{"high", models.SeverityHigh},
	{"medium", models.SeverityMedium},
	{"low", models.SeverityLow},
}

var statusLabels = []struct{ key, stored string }{
	{"new", models.StatusNew},
	{"acknowledged", models.StatusAcknowledged},
	{"resolved", models.StatusResolved},
}

// dayNames is Monday-first while the store numbers days 1..7 from Sunday.
// Names are looked up as dayNames[day-1], so day 1 (Sunday) reads "Monday".
// Dashboard consumers depend on exactly this pairing of index and label;
// changing either side alone breaks them.
var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// AlertStatsService assembles the alert statistics report. It only ever
// reads; each report is a best-effort snapshot with no locking against
// concurrent writers.
type AlertStatsService struct {
	alerts   AlertStore
	users    UserStore
	vehicles VehicleStore
	reports  *cache.Cache
}

func NewAlertStatsService(alerts AlertStore, users UserStore, vehicles VehicleStore) *AlertStatsService {
	return &AlertStatsService{
		alerts:   alerts,
		users:    users,
		vehicles: vehicles,
	}
}

// SetReportCache enables short-lived caching of the global report. Without it
// every request recomputes the report from the store.
func (s *AlertStatsService) SetReportCache(reports *cache.Cache) {
	s.reports = reports
}

// GetStats computes one report for the given scope. A user or vehicle scope
// resolves the entity first (its absence is the caller's error) and yields
// the total alone; the breakdowns, ranking and histograms are global-only.
// The queries run sequentially and the first failure aborts the report.
func (s *AlertStatsService) GetStats(ctx context.Context, scope repository.AlertScope) (*models.AlertStats, error) {
	stats := &models.AlertStats{}

	if id, ok := scope.ByUser(); ok {
		if _, err := s.users.FindByID(ctx, id); err != nil {
			return nil, err
		}
		total, err := s.alerts.Count(ctx, scope, repository.AlertFilter{})
		if err != nil {
			return nil, err
		}
		stats.TotalAlerts = total
		return stats, nil
	}

	if id, ok := scope.ByVehicle(); ok {
		if _, err := s.vehicles.FindByID(ctx, id); err != nil {
			return nil, err
		}
		total, err := s.alerts.Count(ctx, scope, repository.AlertFilter{})
		if err != nil {
			return nil, err
		}
		stats.TotalAlerts = total
		return stats, nil
	}

	if s.reports != nil {
		var cached models.AlertStats
		if err := s.reports.Get(ctx, statsReportKey, &cached); err == nil {
			return &cached, nil
		}
	}

	total, err := s.alerts.Count(ctx, repository.GlobalScope(), repository.AlertFilter{})
	if err != nil {
		return nil, err
	}
	stats.TotalAlerts = total

	stats.SeverityStats = make(map[string]int64, len(severityLabels))
	for _, label := range severityLabels {
		count, err := s.alerts.CountBySeverity(ctx, label.stored)
		if err != nil {
			return nil, err
		}
		stats.SeverityStats[label.key] = count
	}

	stats.StatusStats = make(map[string]int64, len(statusLabels))
	for _, label := range statusLabels {
		count, err := s.alerts.CountByStatus(ctx, label.stored)
		if err != nil {
			return nil, err
		}
		stats.StatusStats[label.key] = count
	}

	stats.TypeStats, err = s.alerts.CountGroupByType(ctx)
	if err != nil {
		return nil, err
	}

	// With no alerts at all the ranking is undefined and the percentage
	// division has no denominator, so the query is skipped entirely.
	if total > 0 {
		stats.TopCars, err = s.topCars(ctx, total)
		if err != nil {
			return nil, err
		}
	}

	stats.TimeStats, err = s.timeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.reports != nil {
		// Best effort; a failed cache write never fails the report.
		_ = s.reports.Set(ctx, statsReportKey, stats, statsReportTTL)
	}

	return stats, nil
}

func (s *AlertStatsService) topCars(ctx context.Context, total int64) ([]models.CarStat, error) {
	buckets, err := s.alerts.CountGroupByVehicle(ctx, topVehicleLimit)
	if err != nil {
		return nil, err
	}

	cars := make([]models.CarStat, 0, len(buckets))
	for _, b := range buckets {
		vehicle, err := s.vehicles.FindByID(ctx, b.VehicleID)
		if errors.Is(err, apperr.ErrNotFound) {
			// The vehicle row vanished between the grouping query and the
			// join; drop the entry rather than failing the report.
			continue
		}
		if err != nil {
			return nil, err
		}
		cars = append(cars, models.CarStat{
			CarID:        vehicle.ID,
			Brand:        vehicle.Brand,
			Model:        vehicle.Model,
			LicensePlate: vehicle.LicensePlate,
			Count:        b.Count,
			Percentage:   float64(b.Count) / float64(total) * 100,
		})
	}
	return cars, nil
}

func (s *AlertStatsService) timeStats(ctx context.Context) (*models.TimeStats, error) {
	byHour, err := s.alerts.CountGroupByHour(ctx)
	if err != nil {
		return nil, err
	}

	dayBuckets, err := s.alerts.CountGroupByDayOfWeek(ctx)
	if err != nil {
		return nil, err
	}

	byDay := make([]models.DayStat, 0, len(dayBuckets))
	for _, b := range dayBuckets {
		if b.Day < 1 || b.Day > len(dayNames) {
			continue
		}
		byDay = append(byDay, models.DayStat{
			Day:     b.Day,
			DayName: dayNames[b.Day-1],
			Count:   b.Count,
		})
	}

	if byHour == nil {
		byHour = []models.HourStat{}
	}
	return &models.TimeStats{ByHour: byHour, ByDay: byDay}, nil
}
