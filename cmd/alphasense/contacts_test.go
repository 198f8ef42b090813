package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tikz/alphasense/interaction"
)

func TestWriteContacts(t *testing.T) {
	m, err := testLoader.Load("P99999")
	if err != nil {
		t.Fatal(err)
	}
	contacts, err := interaction.Contacts(m.Structure(), 2.0)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := writeContacts(&out, m, contacts); err != nil {
		t.Fatal(err)
	}

	expected := []string{
		"residue1\tresidue2\tdistance\tpae",
		"A1\tC2\t1.4\t2.25",
		"C2\tD3\t1.4\t2.25",
		"D3\tE4\t1.4\t2.25",
		"E4\tF5\t1.4\t2.25",
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
}
