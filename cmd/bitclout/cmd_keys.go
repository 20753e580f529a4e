package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Muvon/bitclout-node-api/pkg/keys"
)

func (a *app) keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate, derive and inspect account keys",
	}
	cmd.AddCommand(a.keysGenerateCmd(), a.keysDeriveCmd(), a.keysDecodeCmd())
	return cmd
}

func (a *app) keysGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a new 24 word seed phrase and its first address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := keys.Generate(a.cfg.Node.Network)
			if err != nil {
				return err
			}
			renderFields(cmd.OutOrStdout(),
				"Seed phrase", g.SeedPhrase,
				"Path", keys.DefaultPath.String(),
				"Network", g.Network.String(),
				"Public key", g.PublicKeyHex(),
				"Address", g.Address,
			)
			return nil
		},
	}
}

func (a *app) keysDeriveCmd() *cobra.Command {
	var (
		count int
		path  string
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive addresses from BITCLOUT_SEED_PHRASE or a phrase read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			base := a.cfg.Node.Path()
			if path != "" {
				p, err := keys.ParsePath(path)
				if err != nil {
					return err
				}
				base = p
			}

			phrase := a.cfg.Node.SeedPhrase
			if phrase == "" {
				var err error
				if phrase, err = readLine(cmd.InOrStdin()); err != nil {
					return err
				}
			}
			if err := keys.ValidateSeedPhrase(phrase); err != nil {
				return err
			}

			t := newTable(cmd.OutOrStdout(), "Path", "Address", "Public key")
			for i := range count {
				p := base.WithIndex(base.Index + uint32(i))
				km, err := keys.Derive(phrase, p, a.cfg.Node.Network)
				if err != nil {
					return err
				}
				t.AppendRow([]any{p.String(), km.Address, km.PublicKeyHex()})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of consecutive indexes to derive")
	cmd.Flags().StringVar(&path, "path", "", "derivation path, default m/44'/0'/0'/0/BITCLOUT_DERIVATION_INDEX")
	return cmd
}

func (a *app) keysDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <address>",
		Short: "Validate an address and print its public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, net, err := keys.DecodeAddress(args[0])
			if err != nil {
				return err
			}
			renderFields(cmd.OutOrStdout(),
				"Network", net.String(),
				"Public key", fmt.Sprintf("%x", pub),
			)
			return nil
		},
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("no seed phrase: set BITCLOUT_SEED_PHRASE or pipe it to stdin")
	}
	return line, nil
}
