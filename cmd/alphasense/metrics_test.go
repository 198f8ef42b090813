package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tikz/alphasense/alphafold"
)

var testLoader = &alphafold.Loader{
	Files:   alphafold.DefaultFiles,
	PDBDir:  "../../alphafold/testdata/pdb",
	PAEDir:  "../../alphafold/testdata/pae",
	Workers: 2,
}

const testVariants = `uniprot	cluster	WT	Mut	position
P99999	1	D	N	3
P99999	1	Ala	V	1
P99999	1	K	R	3
Q00000	2	A	V	1
P99999	1	D	N	9
P99999	1	D	N	x
`

func TestWriteMetrics(t *testing.T) {
	var out bytes.Buffer
	opts := metricsOptions{Radii: []float64{2}}

	summary, err := writeMetrics(context.Background(), testLoader, strings.NewReader(testVariants), &out, opts)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{
		"uniprot\tcluster\tWT\tMut\tposition\tpae_2A\tplddt_2A",
		"P99999\t1\tD\tN\t3\t3.5\t51.667",
		"P99999\t1\tAla\tV\t1\t2.25\t65",
		"P99999\t1\tK\tR\t3\tNA\tNA",
		"Q00000\t2\tA\tV\t1\tNA\tNA",
		"P99999\t1\tD\tN\t9\tNA\tNA",
		"P99999\t1\tD\tN\tx\tNA\tNA",
	}
	actual := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(actual) != len(expected) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(expected), len(actual), out.String())
	}
	for i := range expected {
		if actual[i] != expected[i] {
			t.Errorf("line %d: expected %q, got %q", i+1, expected[i], actual[i])
		}
	}

	if summary.Variants != 6 || summary.Models != 1 || summary.Unresolved != 4 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestWriteMetricsWindows(t *testing.T) {
	var out bytes.Buffer
	opts := metricsOptions{Radii: []float64{2, 5.5}, Windows: []int{3}, QueryOnly: true}

	if _, err := writeMetrics(context.Background(), testLoader, strings.NewReader(testVariants), &out, opts); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(out.String(), "\n")
	if lines[0] != "uniprot\tcluster\tWT\tMut\tposition\tpae_2A\tpae_5.5A\tplddt_3res" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "P99999\t1\tD\tN\t3\t2.25\t2.75\t51.667" {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestWriteMetricsInvalid(t *testing.T) {
	tests := map[string]struct {
		input string
		opts  metricsOptions
	}{
		"even window":    {testVariants, metricsOptions{Radii: []float64{5}, Windows: []int{4}}},
		"no radius":      {testVariants, metricsOptions{}},
		"negative":       {testVariants, metricsOptions{Radii: []float64{-1}}},
		"missing column": {"uniprot\tWT\nP99999\tD\n", metricsOptions{Radii: []float64{5}}},
		"empty":          {"", metricsOptions{Radii: []float64{5}}},
	}

	for name, tt := range tests {
		var out bytes.Buffer
		if _, err := writeMetrics(context.Background(), testLoader, strings.NewReader(tt.input), &out, tt.opts); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
