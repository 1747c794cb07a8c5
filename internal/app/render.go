package app

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/Kevrnd/car-garage/internal/model"
)

const dayLayout = "02.01.2006"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printCars(w io.Writer, cars []model.Car) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCAR\tVIN\tYEAR")
	for _, c := range cars {
		year := "-"
		if c.Year != nil {
			year = strconv.Itoa(*c.Year)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Title(), c.VIN, year)
	}
	return tw.Flush()
}

func printSummary(w io.Writer, repairs []model.Repair, stock []model.StockPart, agg model.Aggregates) error {
	tw := newTable(w)

	fmt.Fprintln(tw, "REPAIR\tDATE\tMILEAGE\tWORK\tPARTS\tTOTAL\tDESCRIPTION")
	for _, r := range repairs {
		desc := r.WorkDescription
		if r.IsOilChange() {
			desc = "[oil] " + desc
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
			r.ID, day(r), r.Mileage,
			r.WorkCost.StringFixed(2), r.PartsCost().StringFixed(2), r.TotalCost().StringFixed(2),
			desc,
		)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "STOCK\tNAME\tCODE\tQTY\tUNIT\tTOTAL")
	for _, sp := range stock {
		unit := "-"
		if sp.Cost != nil {
			unit = sp.Cost.StringFixed(2)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			sp.ID, sp.Name, sp.PartCode, sp.Quantity, unit, sp.LineTotal().StringFixed(2))
	}
	fmt.Fprintln(tw)

	printTotals(tw, agg)
	return tw.Flush()
}

func printTotals(w io.Writer, agg model.Aggregates) {
	fmt.Fprintf(w, "work\t%s\n", agg.TotalWorkCost.StringFixed(2))
	fmt.Fprintf(w, "parts\t%s\n", agg.TotalPartsCost.StringFixed(2))
	fmt.Fprintf(w, "total\t%s\n", agg.TotalCost().StringFixed(2))
}

func printReport(w io.Writer, rep model.Report) error {
	tw := newTable(w)

	fmt.Fprintf(tw, "report %s - %s, %d records\n\n",
		rep.From.Format(dayLayout), rep.To.Format(dayLayout), rep.RecordsCount)
	fmt.Fprintln(tw, "DATE\tMILEAGE\tWORK\tPARTS\tTOTAL\tDESCRIPTION\tPARTS USED")
	for _, row := range rep.Rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			row.Date.Format(dayLayout), row.Mileage,
			row.WorkCost.StringFixed(2), row.PartsCost.StringFixed(2), row.TotalCost.StringFixed(2),
			row.WorkDescription, row.Parts,
		)
	}
	fmt.Fprintln(tw)

	printTotals(tw, model.Aggregates{TotalWorkCost: rep.TotalWorkCost, TotalPartsCost: rep.TotalPartsCost})
	return tw.Flush()
}

func printConversion(w io.Writer, res model.ConversionResult, agg model.Aggregates) error {
	tw := newTable(w)

	fmt.Fprintf(tw, "repair %d\n", res.RepairID)
	fmt.Fprintln(tw, "STOCK\tOUTCOME\tPART\tERROR")
	for _, st := range res.Steps {
		part, msg := "-", ""
		if st.PartID != 0 {
			part = strconv.FormatInt(st.PartID, 10)
		}
		if st.Err != nil {
			msg = st.Err.Error()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", st.StockPartID, st.Outcome, part, msg)
	}
	fmt.Fprintln(tw)

	printTotals(tw, agg)
	return tw.Flush()
}

func day(r model.Repair) string {
	if r.Date.IsZero() {
		return "-"
	}
	return r.Date.Format(dayLayout)
}
