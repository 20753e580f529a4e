package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Muvon/bitclout-node-api/pkg/rpc"
	"github.com/Muvon/bitclout-node-api/pkg/tx"
)

func (a *app) txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Work with raw transaction hex",
	}
	cmd.AddCommand(a.txIDCmd(), a.txSignCmd(), a.txSubmitCmd(), a.txInfoCmd())
	return cmd
}

func (a *app) txIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id <hex>",
		Short: "Print the double SHA-256 id of a raw transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := tx.ID(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func (a *app) txSignCmd() *cobra.Command {
	var submit bool
	cmd := &cobra.Command{
		Use:   "sign <unsigned-hex>",
		Short: "Sign a transaction built by the node, optionally submitting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			if !submit {
				signed, err := client.Sign(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), signed)
				return nil
			}

			res, err := client.SignAndSubmit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.recordSubmission(cmd.Context(), rpc.SubmitTransactionMethod, res)
			renderSubmission(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&submit, "submit", false, "submit the signed transaction")
	return cmd
}

func (a *app) txSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <signed-hex>",
		Short: "Submit a signed transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			res, err := client.Submit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.recordSubmission(cmd.Context(), rpc.SubmitTransactionMethod, res)
			renderSubmission(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func (a *app) txInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <transaction-id>",
		Short: "Look up a transaction by its base58check id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			res, err := client.GetTransaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderTransactions(cmd, res.Transactions)
			return nil
		},
	}
}

func renderTransactions(cmd *cobra.Command, txns []rpc.TransactionResponse) {
	t := newTable(cmd.OutOrStdout(), "ID", "Type", "Block", "Outputs")
	for _, txn := range txns {
		var total uint64
		for _, out := range txn.Outputs {
			total += out.AmountNanos
		}
		t.AppendRow([]any{txn.TransactionIDBase58Check, txn.TransactionType, txn.BlockHashHex, deso(total)})
	}
	t.Render()
}
