// Command heatmapctl renders the monthly temperature heatmap from a daily CSV
// without running the service.
//
// Usage:
//
//	heatmapctl svg --source temperature_daily.csv --out heatmap.svg
//	heatmapctl html --source https://example.com/daily.csv --style style.yaml --out index.html
//	heatmapctl grid --mode min
//	heatmapctl buckets --min-year 2010
//	heatmapctl sparkline 2008 1 --out 2008-01.png
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
