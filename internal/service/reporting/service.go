// Package reporting aggregates sale records into calendar-bucketed
// summaries for the report and watch commands.
package reporting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/javoxirone/coffee-sales-management/internal/domain/models"
)

// Period selects the calendar bucket size of a summary.
type Period string

// Supported summary periods.
const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod converts user input into a Period.
func ParsePeriod(value string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(value))) {
	case PeriodDay:
		return PeriodDay, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("period must be day, week or month, got %q: %w", value, models.ErrValidation)
	}
}

// BucketSummary aggregates the sales falling into one calendar bucket.
type BucketSummary struct {
	Bucket   string // e.g. 2024-01-02, 2024-W01, 2024-01
	Start    time.Time
	Quantity int
	Revenue  float64
}

// ProductStat aggregates sales per product.
type ProductStat struct {
	Product  string
	Sales    int // number of transactions
	Quantity int
	Revenue  float64
}

// Service computes summaries over in-memory record sets.
type Service struct {
	logger *zap.Logger
}

// NewService wires a reporting service instance.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Summarize groups records into calendar buckets and sums quantity and
// revenue per bucket. The result is ordered by bucket start date; an empty
// record set yields an empty result.
func (s *Service) Summarize(period Period, records []models.SaleRecord) ([]BucketSummary, error) {
	switch period {
	case PeriodDay, PeriodWeek, PeriodMonth:
	default:
		return nil, fmt.Errorf("unknown period %q: %w", period, models.ErrValidation)
	}

	buckets := make(map[string]*BucketSummary)
	for _, record := range records {
		key, start := bucketFor(period, record.Date)
		summary, ok := buckets[key]
		if !ok {
			summary = &BucketSummary{Bucket: key, Start: start}
			buckets[key] = summary
		}
		summary.Quantity += record.Quantity
		summary.Revenue += record.Revenue()
	}

	result := make([]BucketSummary, 0, len(buckets))
	for _, summary := range buckets {
		result = append(result, *summary)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Start.Before(result[j].Start) })

	s.logger.Debug("summary computed",
		zap.String("period", string(period)),
		zap.Int("records", len(records)),
		zap.Int("buckets", len(result)))
	return result, nil
}

// ProductStats aggregates records per product, ordered by transaction count
// descending with product name as the tie-breaker.
func (s *Service) ProductStats(records []models.SaleRecord) []ProductStat {
	stats := make(map[string]*ProductStat)
	for _, record := range records {
		stat, ok := stats[record.Product]
		if !ok {
			stat = &ProductStat{Product: record.Product}
			stats[record.Product] = stat
		}
		stat.Sales++
		stat.Quantity += record.Quantity
		stat.Revenue += record.Revenue()
	}

	result := make([]ProductStat, 0, len(stats))
	for _, stat := range stats {
		result = append(result, *stat)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Sales != result[j].Sales {
			return result[i].Sales > result[j].Sales
		}
		return result[i].Product < result[j].Product
	})
	return result
}

// FormatSummaries renders bucket summaries as plain text lines, one bucket
// per line. Used by the watch loop and the --plain report output.
func FormatSummaries(period Period, summaries []BucketSummary) string {
	if len(summaries) == 0 {
		return fmt.Sprintf("No sales recorded for any %s yet.", period)
	}

	var sb strings.Builder
	for _, summary := range summaries {
		fmt.Fprintf(&sb, "%s: %d units, %.2f revenue\n", summary.Bucket, summary.Quantity, summary.Revenue)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func bucketFor(period Period, t time.Time) (string, time.Time) {
	switch period {
	case PeriodWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), mondayStart(t)
	case PeriodMonth:
		return t.Format("2006-01"), time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return t.Format("2006-01-02"), time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func mondayStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	daysSinceMonday := (weekday + 6) % 7
	start := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
}
