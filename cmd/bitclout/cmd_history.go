package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Muvon/bitclout-node-api/pkg/keys"
)

func (a *app) historyCmd() *cobra.Command {
	var (
		limit int
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List transactions submitted from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.historyStore()
			if err != nil {
				return err
			}

			publicKey := ""
			if !all {
				if publicKey, err = a.accountKey(); err != nil {
					return err
				}
			}

			entries, err := h.List(cmd.Context(), publicKey, limit)
			if err != nil {
				return err
			}
			t := newTable(cmd.OutOrStdout(), "Submitted", "Method", "Transaction", "Public key")
			for _, e := range entries {
				t.AppendRow([]any{e.SubmittedAt.Format(time.RFC3339), e.Method, e.TxnHashHex, e.PublicKey})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show")
	cmd.Flags().BoolVar(&all, "all", false, "include submissions of every key, not only the configured one")
	return cmd
}

// accountKey resolves the configured account without contacting a node.
func (a *app) accountKey() (string, error) {
	node := a.cfg.Node
	switch {
	case node.SeedPhrase != "":
		km, err := keys.Derive(node.SeedPhrase, node.Path(), node.Network)
		if err != nil {
			return "", err
		}
		return km.Address, nil
	case node.PrivateKey != "":
		km, err := keys.FromPrivateKeyHex(node.PrivateKey, node.Network)
		if err != nil {
			return "", err
		}
		return km.Address, nil
	case node.PublicKey != "":
		return node.PublicKey, nil
	default:
		return "", fmt.Errorf("no account configured, use --all")
	}
}
