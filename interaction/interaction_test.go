package interaction

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/tikz/alphasense/pdb"
)

func loadTestModel(t *testing.T) *pdb.Model {
	t.Helper()
	m, err := pdb.ReadFile("../pdb/testdata/AF-P99999-F1-model_v4.pdb")
	if err != nil {
		t.Fatalf("cannot load model: %s", err)
	}
	return m
}

func TestContacts(t *testing.T) {
	m := loadTestModel(t)

	contacts, err := Contacts(m, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(contacts) != 4 {
		t.Fatalf("expected 4 contacts, got %v", contacts)
	}
	for i, c := range contacts {
		if c.I != i+1 || c.J != i+2 {
			t.Errorf("expected contact %d-%d, got %d-%d", i+1, i+2, c.I, c.J)
		}
		if math.Abs(c.Distance-1.4) > 1e-9 {
			t.Errorf("contact %d-%d: expected distance 1.4, got %f", c.I, c.J, c.Distance)
		}
	}

	near := Neighbours(contacts)
	if !reflect.DeepEqual(near[3], []int{2, 4}) {
		t.Errorf("expected residue 3 to touch [2 4], got %v", near[3])
	}
	if !reflect.DeepEqual(near[1], []int{2}) {
		t.Errorf("expected residue 1 to touch [2], got %v", near[1])
	}

	contacts, _ = Contacts(m, 1.0)
	if len(contacts) != 0 {
		t.Errorf("expected no contacts, got %v", contacts)
	}

	if _, err := Contacts(m, -1); err == nil {
		t.Errorf("expected an error for a negative distance")
	}
}

func TestInterChain(t *testing.T) {
	m := loadTestModel(t)

	contacts, err := InterChain(m, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(contacts) != 0 {
		t.Errorf("expected no contacts in a single chain, got %v", contacts)
	}

	line := func(serial int, res, chain string, resSeq int, x float64) string {
		return fmt.Sprintf("ATOM  %5d  CA  %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f           C  ",
			serial, res, chain, resSeq, x, 0.0, 0.0, 1.0, 80.0)
	}
	raw := strings.Join([]string{
		line(1, "MET", "A", 1, 0),
		line(2, "LYS", "A", 2, 3),
		"TER",
		line(3, "GLY", "B", 3, 6),
		line(4, "SER", "B", 4, 9),
	}, "\n")
	dimer, err := pdb.Parse(strings.NewReader(raw), "dimer")
	if err != nil {
		t.Fatal(err)
	}

	contacts, err = InterChain(dimer, 3.5)
	if err != nil {
		t.Fatal(err)
	}
	expected := []Contact{{I: 2, J: 3, Distance: 3}}
	if !reflect.DeepEqual(contacts, expected) {
		t.Errorf("expected %v, got %v", expected, contacts)
	}

	all, _ := Contacts(dimer, 3.5)
	if len(all) != 3 {
		t.Errorf("expected 3 contacts, got %v", all)
	}
}
