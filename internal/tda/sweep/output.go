package sweep

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteSummaryCSV writes one row per frame with a header line.
func WriteSummaryCSV(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"cutoff", "threshold", "edges", "triangles", "components"}); err != nil {
		return err
	}
	for _, f := range s.Frames {
		row := []string{
			strconv.FormatFloat(f.Cutoff, 'f', -1, 64),
			strconv.FormatFloat(f.Threshold, 'f', -1, 64),
			strconv.Itoa(f.Edges),
			strconv.Itoa(f.Triangles),
			strconv.Itoa(f.Components),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
