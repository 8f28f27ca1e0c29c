package main

import (
	"context"
	"flag"
	"fmt"
	"math"

	"github.com/odonslab/dengueview-go/aggregate"
	"github.com/odonslab/dengueview-go/cases"
	"github.com/odonslab/dengueview-go/config"
	"github.com/odonslab/dengueview-go/nasapower"
	"github.com/odonslab/dengueview-go/types"
)

// One-shot fetch of the configured climate window, printed as the
// joined monthly table. Useful for eyeballing the pipeline without the
// web server.
func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	client := nasapower.New(cnfg.Climate.GetBaseURL(), cnfg.Climate.GetTimeout())
	data, err := client.FetchDaily(context.Background(), types.ClimateRequest{
		Latitude:   cnfg.Climate.GetLatitude(),
		Longitude:  cnfg.Climate.GetLongitude(),
		Start:      cnfg.Climate.GetStart(),
		End:        cnfg.Climate.GetEnd(),
		Parameters: cnfg.Climate.GetParameters(),
	})
	if err != nil {
		panic(err)
	}

	for _, code := range data.Unavailable {
		fmt.Printf("warning: %s unavailable\n", code)
	}

	rows, err := aggregate.Monthly(aggregate.Align(data.Series))
	if err != nil {
		panic(err)
	}

	joined, err := aggregate.LeftJoin(rows, cases.Records())
	if err != nil {
		panic(err)
	}

	for _, row := range joined {
		fmt.Printf("%s", row.Key)
		for _, code := range cnfg.Climate.GetParameters() {
			if v, ok := row.Values[code]; ok && !math.IsNaN(v) {
				fmt.Printf("  %s=%.2f", code, v)
			} else {
				fmt.Printf("  %s=-", code)
			}
		}
		if row.Cases.IsValid() {
			fmt.Printf("  cases=%d", row.Cases.ValueOrDefault(0))
		} else {
			fmt.Printf("  cases=-")
		}
		fmt.Println()
	}
}
