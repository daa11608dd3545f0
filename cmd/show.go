package cmd

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LBV2012-26/Celestia/internal/solarsys"
)

var showCmd = &cobra.Command{
	Use:   "show [catalog.ssc ...]",
	Short: "Print the body tree built from the catalogs",
	Long: "Show loads the catalogs and prints the resulting body hierarchy. " +
		"With --body, prints the details of one object instead.",
	RunE: runShow,
}

func init() {
	addLoaderFlags(showCmd)
	showCmd.Flags().String("body", "", "print details of one object by path (e.g. Sol/Earth/Moon)")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.loadAll(s.catalogPaths(args)); err != nil {
		return err
	}

	if path, _ := cmd.Flags().GetString("body"); path != "" {
		sel := s.universe.FindPath(path)
		if sel.Body == nil {
			return fmt.Errorf("object %q not found", path)
		}
		printBodyDetails(sel.Body, path)
		return nil
	}

	for _, st := range s.universe.Stars() {
		fmt.Fprintf(os.Stdout, "%s\n", st.Name)
		sys := s.universe.SolarSystem(st)
		if sys == nil {
			continue
		}
		for _, b := range sys.Planets().Bodies() {
			printTree(b, 1)
		}
	}
	return nil
}

func printTree(b *solarsys.Body, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(os.Stdout, "%s%s  [%s, r=%.6g km]\n", indent, b.Name(), b.Classification(), b.Radius())
	if sats := b.Satellites(); sats != nil {
		for _, sat := range sats.Bodies() {
			printTree(sat, depth+1)
		}
	}
}

func printBodyDetails(b *solarsys.Body, path string) {
	fmt.Fprintf(os.Stdout, "%s\n", path)
	fmt.Fprintf(os.Stdout, "  class:    %s\n", b.Classification())
	axes := b.SemiAxes()
	fmt.Fprintf(os.Stdout, "  semiaxes: %.6g x %.6g x %.6g km\n", axes[0], axes[1], axes[2])
	fmt.Fprintf(os.Stdout, "  albedo:   %.3g\n", b.Albedo())
	if m := b.Mass(); m != 0 {
		fmt.Fprintf(os.Stdout, "  mass:     %.6g\n", m)
	}

	if tl := b.Timeline(); tl != nil {
		fmt.Fprintf(os.Stdout, "  timeline: %d phase(s), %s .. %s\n",
			tl.PhaseCount(), formatJD(tl.StartTime()), formatJD(tl.EndTime()))
	}

	if names := b.AlternateSurfaceNames(); len(names) > 0 {
		fmt.Fprintf(os.Stdout, "  surfaces: %s\n", strings.Join(names, ", "))
	}
	for _, loc := range b.Locations() {
		fmt.Fprintf(os.Stdout, "  location: %s (%s, %.6g km)\n", loc.Name(), loc.FeatureType(), loc.Size())
	}
	if n := len(bodiesOf(b)); n > 0 {
		fmt.Fprintf(os.Stdout, "  satellites: %d\n", n)
	}
}

func formatJD(jd float64) string {
	if math.IsInf(jd, -1) {
		return "-inf"
	}
	if math.IsInf(jd, 1) {
		return "+inf"
	}
	return fmt.Sprintf("JD %.6f", jd)
}

func bodiesOf(b *solarsys.Body) []*solarsys.Body {
	if sats := b.Satellites(); sats != nil {
		return sats.Bodies()
	}
	return nil
}

func countBodies(bodies []*solarsys.Body) int {
	n := 0
	for _, b := range bodies {
		n += 1 + countBodies(bodiesOf(b))
	}
	return n
}
