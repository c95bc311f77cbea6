// Command gen-points prints synthetic point clouds as YAML for use in a
// tda-play configuration.
package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/tda.playground/internal/tda/adjacency"
	"github.com/banshee-data/tda.playground/internal/tda/pointgen"
)

func main() {
	n := flag.Int("n", 2, "Number of rectangles (rectangles) or points (circle, box)")
	shape := flag.String("shape", "rectangles", "Point cloud shape: rectangles, circle or box")
	seed := flag.Uint64("seed", 1, "Random seed for circle and box")
	radius := flag.Float64("radius", 1, "Circle radius")
	sigma := flag.Float64("sigma", 0.05, "Radial noise standard deviation for circle")
	size := flag.Float64("size", 2, "Box side length")
	name := flag.String("name", "", "Emit a complete config with one complex run of this name")
	output := flag.String("o", "", "Output file (defaults to stdout)")
	flag.Parse()

	var (
		points []adjacency.Point
		err    error
	)
	switch *shape {
	case "rectangles":
		points, err = pointgen.Rectangles(*n)
	case "circle":
		points, err = pointgen.NoisyCircle(*n, *radius, *sigma, *seed)
	case "box":
		points, err = pointgen.UniformBox(*n, r2.Box{Max: r2.Vec{X: *size, Y: *size}}, *seed)
	default:
		log.Fatalf("Unknown shape %q", *shape)
	}
	if err != nil {
		log.Fatalf("Failed to generate points: %v", err)
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)

	if *name != "" {
		err = pointgen.WriteConfig(bw, *name, points)
	} else {
		err = pointgen.WriteYAML(bw, points)
	}
	if err != nil {
		log.Fatalf("Failed to write points: %v", err)
	}
	if err := bw.Flush(); err != nil {
		log.Fatalf("Failed to flush output: %v", err)
	}
}
