package garage

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Kevrnd/car-garage/internal/model"
)

// GenerateReport filters the loaded repairs by date. It never touches the network.
func (s *Store) GenerateReport(from, to time.Time) (model.Report, error) {
	s.mu.RLock()
	repairs := s.repairs
	s.mu.RUnlock()

	rep, err := BuildReport(repairs, from, to)
	if err != nil {
		return model.Report{}, fmt.Errorf("garage.store.GenerateReport: %w", err)
	}
	return rep, nil
}

// BuildReport keeps repairs dated within [from, to], both days included, ordered by date.
func BuildReport(repairs []model.Repair, from, to time.Time) (model.Report, error) {
	from, to = day(from), day(to)
	if to.Before(from) {
		return model.Report{}, fmt.Errorf("%w: period end %s is before start %s",
			model.ErrInvalidArgument, to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	end := to.AddDate(0, 0, 1)

	picked := lo.Filter(repairs, func(r model.Repair, _ int) bool {
		return !r.Date.IsZero() && !r.Date.Before(from) && r.Date.Before(end)
	})
	sort.SliceStable(picked, func(i, j int) bool {
		if !picked[i].Date.Equal(picked[j].Date) {
			return picked[i].Date.Before(picked[j].Date)
		}
		return picked[i].ID < picked[j].ID
	})

	rep := model.Report{
		From:           from,
		To:             to,
		Rows:           make([]model.ReportRow, 0, len(picked)),
		TotalWorkCost:  decimal.Zero,
		TotalPartsCost: decimal.Zero,
	}
	for _, r := range picked {
		row := model.ReportRow{
			RepairID:        r.ID,
			Date:            r.Date,
			Mileage:         r.Mileage,
			WorkDescription: r.WorkDescription,
			Parts:           r.PartsSummary(),
			WorkCost:        r.WorkCost,
			PartsCost:       r.PartsCost(),
			TotalCost:       r.TotalCost(),
		}
		rep.Rows = append(rep.Rows, row)
		rep.TotalWorkCost = rep.TotalWorkCost.Add(row.WorkCost)
		rep.TotalPartsCost = rep.TotalPartsCost.Add(row.PartsCost)
	}
	rep.TotalCost = rep.TotalWorkCost.Add(rep.TotalPartsCost)
	rep.RecordsCount = len(rep.Rows)

	return rep, nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
