package results

import (
	"encoding/csv"
	"io"
	"strconv"

	"wolfsheep/internal/sims/wolfsheep"
)

// WriteCSV writes one row per sample with a Step,Sheep,Wolves,Grass header.
func WriteCSV(w io.Writer, samples []wolfsheep.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Step", "Sheep", "Wolves", "Grass"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.Itoa(s.Step),
			strconv.Itoa(s.Sheep),
			strconv.Itoa(s.Wolves),
			strconv.Itoa(s.Grass),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
