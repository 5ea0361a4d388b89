package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/katalvlaran/permsearch/bench"
	"github.com/katalvlaran/permsearch/tour"
)

func printRecords(w io.Writer, rep *bench.Report) {
	rows := make([][]string, 0, len(rep.Records))
	for _, rec := range rep.Records {
		rows = append(rows, []string{
			strconv.Itoa(rec.Run),
			strconv.FormatInt(rec.Seed, 10),
			strconv.FormatInt(rec.Best, 10),
			strconv.FormatInt(rec.Final, 10),
			strconv.FormatInt(rec.FEs, 10),
			strconv.FormatInt(rec.Iterations, 10),
			rec.Stop.String(),
			fmt.Sprintf("%.2f", float64(rec.Elapsed.Microseconds())/1000),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Run", "Seed", "Best", "Final", "FEs", "Iterations", "Stop", "Time(ms)"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func printSummary(w io.Writer, rep *bench.Report) {
	c := rep.Cost
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Runs", "Best", "Mean", "Std", "Median", "Worst", "Distinct", "Avg(ms)"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.Append([]string{
		rep.Algorithm,
		strconv.Itoa(c.N),
		fmt.Sprintf("%.0f", c.Min),
		fmt.Sprintf("%.2f", c.Mean),
		fmt.Sprintf("%.2f", c.Std),
		fmt.Sprintf("%.1f", c.Median),
		fmt.Sprintf("%.0f", c.Max),
		strconv.Itoa(rep.Distinct),
		fmt.Sprintf("%.2f", rep.Time.Mean),
	})
	table.Render()
}

// printBestTour prints the best run's tour starting from city 0.
func printBestTour(w io.Writer, rep *bench.Report) error {
	best := rep.Records[rep.BestRun]
	p, err := tour.RotateToStart(best.Tour, 0)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "best tour (run %d, cost %d): %s\n", best.Run, best.Best, tour.DebugString(p))

	return err
}

func writeCSVFile(path string, rep *bench.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = bench.WriteCSV(f, rep); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
