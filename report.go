package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"hvac/pipeline"
	"hvac/process"
)

func writeReport(w io.Writer, name string, p *pipeline.Pipeline) error {
	if name == "" {
		name = "scenario"
	}
	results := p.Results()
	fmt.Fprintf(w, "%s: %d blocks\n\n", name, len(results))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tprocess\tt [°C]\tRH [%]\tx [g/kg]\tdry air\tvolume\theat\tcondensate")
	for i, res := range results {
		out := res.OutletFlow()
		air := out.Air()
		condensate := "-"
		if c, ok := res.(*process.CoolingResult); ok {
			condensate = humanize.SIWithDigits(c.Condensate.MassFlow()*3600, 2, "kg/h")
		}
		fmt.Fprintf(tw, "%d\t%v\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i,
			res.Kind(),
			humanize.FtoaWithDigits(air.DryBulbTemperature(), 2),
			humanize.FtoaWithDigits(air.RelativeHumidity(), 2),
			humanize.FtoaWithDigits(air.HumidityRatio()*1000, 3),
			humanize.SIWithDigits(out.DryAirMassFlow(), 3, "kg/s"),
			humanize.CommafWithDigits(out.VolumetricFlow()*3600, 1)+" m³/h",
			humanize.SIWithDigits(res.HeatOfProcess(), 3, "W"),
			condensate,
		)
	}
	return tw.Flush()
}
