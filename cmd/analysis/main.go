// Command analysis measures empirical false positive rates against the
// theoretical predictions for a range of filter configurations. It fills
// each filter to its expected capacity, then probes it with a disjoint
// key set and reports the observed rate alongside the formula's answer.
//
// Usage:
//
//	go run .
//	go run . -items 500000 -probes 2000000
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/s3bk/fastbloom"
)

var (
	items  = flag.Uint64("items", 100_000, "elements inserted into each filter")
	probes = flag.Uint64("probes", 1_000_000, "disjoint keys probed per configuration")
)

func main() {
	flag.Parse()

	targets := []float64{0.1, 0.01, 0.001, 0.0001}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "target\tbits\thashes\tbits/item\ttheoretical\tobserved\testimated n")
	for _, p := range targets {
		row(w, *items, p, *probes)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, "analysis:", err)
		os.Exit(1)
	}
}

func row(w *tabwriter.Writer, n uint64, p float64, probes uint64) {
	f := fastbloom.NewBloomFilter(n, p)
	for i := range n {
		f.Add(key("in", i))
	}

	var falsePositives uint64
	for i := range probes {
		if f.Contains(key("out", i)) {
			falsePositives++
		}
	}

	observed := float64(falsePositives) / float64(probes)
	theoretical := f.EstimatedFalsePositiveRate()
	bitsPerItem := float64(f.Size()) / float64(n)

	fmt.Fprintf(w, "%g\t%d\t%d\t%.2f\t%.5f\t%.5f\t%d\n",
		p, f.Size(), f.Hashes(), bitsPerItem, theoretical, observed, f.EstimatedElements())
}

func key(prefix string, i uint64) []byte {
	return fmt.Appendf(nil, "%s-%d", prefix, i)
}
