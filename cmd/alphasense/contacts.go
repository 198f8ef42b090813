package main

import (
	"encoding/csv"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/tikz/alphasense/alphafold"
	"github.com/tikz/alphasense/interaction"
)

func runContacts(cmd *cobra.Command, args []string) error {
	l, err := loader(cmd)
	if err != nil {
		return err
	}
	radius, err := cmd.Flags().GetFloat64("radius")
	if err != nil {
		return err
	}
	interChain, err := cmd.Flags().GetBool("inter-chain")
	if err != nil {
		return err
	}

	m, err := l.Load(args[0])
	if err != nil {
		return err
	}

	find := interaction.Contacts
	if interChain {
		find = interaction.InterChain
	}
	contacts, err := find(m.Structure(), radius)
	if err != nil {
		return err
	}
	slog.Debug("contacts found", slog.String("model", m.String()), slog.Int("contacts", len(contacts)))

	return writeContacts(cmd.OutOrStdout(), m, contacts)
}

// writeContacts writes one row per contact with its distance and pair PAE.
func writeContacts(out io.Writer, m *alphafold.Model, contacts []interaction.Contact) error {
	sym := m.PAE().Symmetric()
	residues := m.Structure().Residues

	w := csv.NewWriter(out)
	w.Comma = '\t'
	w.Write([]string{"residue1", "residue2", "distance", "pae"})
	for _, c := range contacts {
		w.Write([]string{
			residues[c.I-1].ID(),
			residues[c.J-1].ID(),
			formatValue(scalar.Round(c.Distance, 3)),
			formatValue(sym.At(c.I-1, c.J-1)),
		})
	}
	w.Flush()
	return w.Error()
}
