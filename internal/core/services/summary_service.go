package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mpopesco/investfolio/internal/apperrors"
	"github.com/mpopesco/investfolio/internal/core/domain"
	portsrepo "github.com/mpopesco/investfolio/internal/core/ports/repositories"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// promptCharBudget caps the assembled prompt. When the full variant exceeds
// it, the detailed breakdown is replaced by a compact one showing only the
// most recent periods; the outlier statistics always cover the full history.
const promptCharBudget = 4000

// compactPeriodCount is how many breakdown periods the compact variant shows.
const compactPeriodCount = 6

// quarterlyAbove is the distinct-month count above which the breakdown
// switches from monthly to quarterly buckets.
const quarterlyAbove = 12

const noObjectivePrompt = "The user has not set a savings objective yet. " +
	"Reply with a single short sentence asking them to set a target amount first."

const answerInstructions = "Based on this history, estimate how long it will take the user to reach the target. " +
	"Answer in the exact format \"It will take you X years\" or \"It will take you X months\". " +
	"When one-time outlier contributions are listed, weight the recurring monthly rate over the raw average."

// summaryService compresses the investment history into a bounded prompt for
// the forecasting model. Identical inputs always produce identical text.
type summaryService struct {
	investmentRepo portsrepo.InvestmentRepository
	objectiveRepo  portsrepo.ObjectiveRepository
}

// NewSummaryService creates a new history summarizer.
func NewSummaryService(investmentRepo portsrepo.InvestmentRepository, objectiveRepo portsrepo.ObjectiveRepository) portssvc.SummarySvcFacade {
	return &summaryService{
		investmentRepo: investmentRepo,
		objectiveRepo:  objectiveRepo,
	}
}

// period is one breakdown bucket (a calendar month or quarter).
type period struct {
	label string
	total decimal.Decimal
	count int
}

// contributionStats is the outlier-aware split of the monthly totals.
// Recurring months fall at or below the threshold and represent steady
// investing behaviour; outlier months are lump sums listed separately so a
// single large deposit does not mislead the forecaster.
type contributionStats struct {
	recurringMonths int
	recurringAvg    decimal.Decimal
	outliers        []period
}

// BuildPrompt assembles the forecasting prompt from the ledger and objective.
func (s *summaryService) BuildPrompt(ctx context.Context) (string, error) {
	objective, err := s.objectiveRepo.FindObjective(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return noObjectivePrompt, nil
		}
		return "", fmt.Errorf("failed to load objective for summary: %w", err)
	}

	investments, err := s.investmentRepo.ListInvestments(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list investments for summary: %w", err)
	}

	if len(investments) == 0 {
		return fmt.Sprintf(
			"The user wants to save %s %s but has not recorded any investments yet. "+
				"Give a realistic estimate of how long reaching that target takes when starting from scratch "+
				"with typical recurring investing. %s",
			objective.TargetAmount.StringFixed(2), objective.Currency, answerInstructions,
		), nil
	}

	months := bucketByMonth(investments)
	stats := computeContributionStats(months)

	full := s.render(objective, investments, months, stats, false)
	if len(full) <= promptCharBudget {
		return full, nil
	}
	return s.render(objective, investments, months, stats, true), nil
}

// render writes one prompt variant. The compact variant keeps the same
// target/total/span/diversity/recurring summary but lists only the most
// recent periods in the breakdown.
func (s *summaryService) render(objective *domain.Objective, investments []domain.Investment, months []period, stats contributionStats, compact bool) string {
	grandTotal := decimal.Zero
	funds := make(map[string]struct{})
	platforms := make(map[string]struct{})
	for _, inv := range investments {
		grandTotal = grandTotal.Add(inv.Amount)
		funds[inv.Fund] = struct{}{}
		platforms[inv.Platform] = struct{}{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The user has a savings objective of %s %s.\n", objective.TargetAmount.StringFixed(2), objective.Currency)
	fmt.Fprintf(&b, "Total invested so far: %s across %d records.\n", grandTotal.StringFixed(2), len(investments))
	fmt.Fprintf(&b, "The portfolio spans %d funds on %d platforms.\n", len(funds), len(platforms))
	if len(months) > 0 {
		fmt.Fprintf(&b, "The history covers %d months, from %s to %s.\n",
			len(months), months[0].label, months[len(months)-1].label)
	}

	breakdown := months
	if len(months) > quarterlyAbove {
		breakdown = bucketByQuarter(months)
	}
	// Compacting trims the breakdown only. The outlier list is always
	// rendered in full, so a history dominated by outlier months can still
	// exceed the character budget.
	shown := breakdown
	if compact && len(shown) > compactPeriodCount {
		shown = shown[len(shown)-compactPeriodCount:]
		fmt.Fprintf(&b, "\nMost recent %d periods:\n", compactPeriodCount)
	} else {
		b.WriteString("\nContribution breakdown:\n")
	}
	for _, p := range shown {
		fmt.Fprintf(&b, "- %s: %s (%d records)\n", p.label, p.total.StringFixed(2), p.count)
	}

	if stats.recurringMonths > 0 {
		fmt.Fprintf(&b, "\nTypical recurring contribution: about %s per month, averaged over %d regular months.\n",
			stats.recurringAvg.StringFixed(2), stats.recurringMonths)
	}
	if len(stats.outliers) > 0 {
		b.WriteString("One-time or outlier contributions, excluded from the recurring rate:\n")
		for _, o := range stats.outliers {
			fmt.Fprintf(&b, "- %s: %s\n", o.label, o.total.StringFixed(2))
		}
	}

	b.WriteString("\n")
	b.WriteString(answerInstructions)
	return b.String()
}

// bucketByMonth groups records into calendar year-month periods, sorted
// chronologically. Records whose date cannot carry a YYYY-MM prefix are left
// out of the breakdown.
func bucketByMonth(investments []domain.Investment) []period {
	totals := make(map[string]*period)
	for _, inv := range investments {
		ym := inv.YearMonth()
		if ym == "" {
			continue
		}
		p, ok := totals[ym]
		if !ok {
			p = &period{label: ym, total: decimal.Zero}
			totals[ym] = p
		}
		p.total = p.total.Add(inv.Amount)
		p.count++
	}

	months := make([]period, 0, len(totals))
	for _, p := range totals {
		months = append(months, *p)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].label < months[j].label })
	return months
}

// bucketByQuarter re-aggregates monthly periods into quarters, keeping the
// breakdown bounded for long histories.
func bucketByQuarter(months []period) []period {
	totals := make(map[string]*period)
	order := make([]string, 0)
	for _, m := range months {
		year := m.label[:4]
		monthNum, err := strconv.Atoi(m.label[5:7])
		if err != nil {
			continue
		}
		label := fmt.Sprintf("%s-Q%d", year, (monthNum-1)/3+1)
		p, ok := totals[label]
		if !ok {
			p = &period{label: label, total: decimal.Zero}
			totals[label] = p
			order = append(order, label)
		}
		p.total = p.total.Add(m.total)
		p.count += m.count
	}

	quarters := make([]period, 0, len(order))
	for _, label := range order {
		quarters = append(quarters, *totals[label])
	}
	sort.Slice(quarters, func(i, j int) bool { return quarters[i].label < quarters[j].label })
	return quarters
}

// computeContributionStats splits the monthly totals into recurring months
// and outliers. The threshold is min(Q3 + 0.5*IQR, median*1.8), further
// capped at median*1.2 when that is smaller. The three interacting caps are a
// faithfully ported heuristic; changing them changes the observable prompt
// text and downstream forecasts.
func computeContributionStats(months []period) contributionStats {
	if len(months) == 0 {
		return contributionStats{recurringAvg: decimal.Zero}
	}

	totals := make([]decimal.Decimal, len(months))
	for i, m := range months {
		totals[i] = m.total
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].LessThan(totals[j]) })

	med := median(totals)
	q1 := median(lowerHalf(totals))
	q3 := median(upperHalf(totals))
	iqr := q3.Sub(q1)

	threshold := q3.Add(iqr.Mul(decimal.RequireFromString("0.5")))
	if alt := med.Mul(decimal.RequireFromString("1.8")); alt.LessThan(threshold) {
		threshold = alt
	}
	if hardCap := med.Mul(decimal.RequireFromString("1.2")); hardCap.LessThan(threshold) {
		threshold = hardCap
	}

	stats := contributionStats{recurringAvg: decimal.Zero}
	recurringSum := decimal.Zero
	for _, m := range months {
		if m.total.LessThanOrEqual(threshold) {
			recurringSum = recurringSum.Add(m.total)
			stats.recurringMonths++
		} else {
			stats.outliers = append(stats.outliers, m)
		}
	}
	if stats.recurringMonths > 0 {
		stats.recurringAvg = recurringSum.Div(decimal.NewFromInt(int64(stats.recurringMonths)))
	}
	return stats
}

// median of an ascending-sorted slice; zero for an empty one.
func median(sorted []decimal.Decimal) decimal.Decimal {
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(decimal.NewFromInt(2))
}

// lowerHalf returns the values below the median position.
func lowerHalf(sorted []decimal.Decimal) []decimal.Decimal {
	if len(sorted) < 2 {
		return sorted
	}
	return sorted[:len(sorted)/2]
}

// upperHalf returns the values above the median position.
func upperHalf(sorted []decimal.Decimal) []decimal.Decimal {
	if len(sorted) < 2 {
		return sorted
	}
	return sorted[(len(sorted)+1)/2:]
}
