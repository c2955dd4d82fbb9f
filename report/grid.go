package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/samuelfneumann/tabular/dp"
	"github.com/samuelfneumann/tabular/environment/carrental"
)

// PolicyGrid writes p as a grid with the number of cars at location 1
// decreasing down the rows and the number of cars at location 2
// increasing along the columns. Cars moved to location 2 are green and
// cars moved to location 1 are blue when color is true.
func PolicyGrid(w io.Writer, p *dp.Policy, color bool) error {
	au := aurora.NewAurora(color)
	rows, cols := p.Dims()

	for i := rows - 1; i >= 0; i-- {
		if _, err := fmt.Fprintf(w, "%3d |", i); err != nil {
			return fmt.Errorf("policyGrid: %w", err)
		}
		for j := 0; j < cols; j++ {
			a := p.At(carrental.State{Cars1: i, Cars2: j})
			cell := fmt.Sprintf("%3d", int(a))

			var v aurora.Value
			switch {
			case a > 0:
				v = au.Green(cell)
			case a < 0:
				v = au.Blue(cell)
			default:
				v = au.Reset(cell)
			}
			if _, err := fmt.Fprint(w, v); err != nil {
				return fmt.Errorf("policyGrid: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("policyGrid: %w", err)
		}
	}

	_, err := fmt.Fprintf(w, "    +%s\n", strings.Repeat("-", 3*cols))
	if err != nil {
		return fmt.Errorf("policyGrid: %w", err)
	}
	return nil
}
