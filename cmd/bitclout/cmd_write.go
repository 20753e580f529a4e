package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Muvon/bitclout-node-api/pkg/rpc"
)

// parseAmount converts a decimal DESO or creator coin amount to nanos.
func parseAmount(s string) (uint64, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	nanos, err := rpc.DeSoToNanos(amount)
	if err != nil {
		return 0, err
	}
	if nanos == 0 {
		return 0, fmt.Errorf("amount must be positive, got %s", s)
	}
	return nanos, nil
}

// submit runs one build, sign and submit call and records the result.
func (a *app) submit(cmd *cobra.Command, method rpc.Method, fn func(context.Context, *rpc.Client) (rpc.SubmitTransactionResponse, error)) error {
	client, err := a.nodeClient()
	if err != nil {
		return err
	}
	res, err := fn(cmd.Context(), client)
	if err != nil {
		return err
	}
	a.recordSubmission(cmd.Context(), method, res)
	renderSubmission(cmd.OutOrStdout(), res)
	return nil
}

func (a *app) sendCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "send <recipient> <amount>",
		Short: "Send DESO to a public key or username",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nanos, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if dryRun {
				client, err := a.nodeClient()
				if err != nil {
					return err
				}
				res, err := client.CreateSendDeSoTx(cmd.Context(), args[0], nanos)
				if err != nil {
					return err
				}
				renderUnsigned(cmd.OutOrStdout(), res.UnsignedTransaction, "Spend", deso(res.SpendAmountNanos))
				return nil
			}
			return a.submit(cmd, rpc.SendDeSoMethod, func(ctx context.Context, c *rpc.Client) (rpc.SubmitTransactionResponse, error) {
				return c.SendDeSo(ctx, args[0], nanos)
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "build the transaction and show its fee without submitting")
	return cmd
}

func (a *app) postCmd() *cobra.Command {
	var images []string
	cmd := &cobra.Command{
		Use:   "post <text>",
		Short: "Publish a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.submit(cmd, rpc.SubmitPostMethod, func(ctx context.Context, c *rpc.Client) (rpc.SubmitTransactionResponse, error) {
				return c.SubmitPost(ctx, args[0], images...)
			})
		},
	}
	cmd.Flags().StringSliceVar(&images, "image", nil, "image URL to attach, repeatable")
	return cmd
}

func (a *app) messageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "message <recipient> <text>",
		Short: "Send a direct message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.submit(cmd, rpc.SendMessageStatelessMethod, func(ctx context.Context, c *rpc.Client) (rpc.SubmitTransactionResponse, error) {
				return c.SendMessage(ctx, args[0], args[1])
			})
		},
	}
}

func (a *app) followCmd(unfollow bool) *cobra.Command {
	use, short := "follow <public-key>", "Follow an account"
	if unfollow {
		use, short = "unfollow <public-key>", "Stop following an account"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.submit(cmd, rpc.CreateFollowTxnStatelessMethod, func(ctx context.Context, c *rpc.Client) (rpc.SubmitTransactionResponse, error) {
				if unfollow {
					return c.Unfollow(ctx, args[0])
				}
				return c.Follow(ctx, args[0])
			})
		},
	}
}

func (a *app) likeCmd(unlike bool) *cobra.Command {
	use, short := "like <post-hash>", "Like a post"
	if unlike {
		use, short = "unlike <post-hash>", "Remove a like"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.submit(cmd, rpc.CreateLikeStatelessMethod, func(ctx context.Context, c *rpc.Client) (rpc.SubmitTransactionResponse, error) {
				if unlike {
					return c.Unlike(ctx, args[0])
				}
				return c.Like(ctx, args[0])
			})
		},
	}
}

func (a *app) diamondsCmd() *cobra.Command {
	var level int
	cmd := &cobra.Command{
		Use:   "diamonds <receiver> <post-hash>",
		Short: "Send diamonds to a post",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if level < 1 || level > 6 {
				return fmt.Errorf("diamond level must be between 1 and 6, got %d", level)
			}
			return a.submit(cmd, rpc.SendDiamondsMethod, func(ctx context.Context, c *rpc.Client) (rpc.SubmitTransactionResponse, error) {
				return c.SendDiamonds(ctx, args[0], args[1], level)
			})
		},
	}
	cmd.Flags().IntVar(&level, "level", 1, "diamond level, 1 to 6")
	return cmd
}

func (a *app) coinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coin",
		Short: "Trade and transfer creator coins",
	}
	cmd.AddCommand(a.coinTradeCmd(rpc.CreatorCoinBuy), a.coinTradeCmd(rpc.CreatorCoinSell), a.coinTransferCmd())
	return cmd
}

func (a *app) coinTradeCmd(op rpc.CreatorCoinOperation) *cobra.Command {
	var dryRun bool
	use, short := "buy <creator> <deso-amount>", "Buy creator coins for DESO"
	if op == rpc.CreatorCoinSell {
		use, short = "sell <creator> <coin-amount>", "Sell creator coins for DESO"
	}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nanos, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if dryRun {
				return a.previewTrade(cmd, op, args[0], nanos)
			}
			return a.submit(cmd, rpc.BuyOrSellCreatorCoinMethod, func(ctx context.Context, c *rpc.Client) (rpc.SubmitTransactionResponse, error) {
				if op == rpc.CreatorCoinSell {
					return c.SellCreatorCoin(ctx, args[0], nanos)
				}
				return c.BuyCreatorCoin(ctx, args[0], nanos)
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the expected return without submitting")
	return cmd
}

func (a *app) previewTrade(cmd *cobra.Command, op rpc.CreatorCoinOperation, creator string, nanos uint64) error {
	client, err := a.nodeClient()
	if err != nil {
		return err
	}

	var res rpc.BuyOrSellCreatorCoinResponse
	if op == rpc.CreatorCoinSell {
		res, err = client.PreviewSellCreatorCoin(cmd.Context(), creator, nanos)
	} else {
		res, err = client.PreviewBuyCreatorCoin(cmd.Context(), creator, nanos)
	}
	if err != nil {
		return err
	}
	renderUnsigned(cmd.OutOrStdout(), res.UnsignedTransaction,
		"Expected DESO", deso(res.ExpectedDeSoReturnedNanos),
		"Expected coins", rpc.NanosToDeSo(res.ExpectedCreatorCoinReturnedNanos).StringFixed(9),
		"Founder reward", rpc.NanosToDeSo(res.FounderRewardGeneratedNanos).StringFixed(9),
	)
	return nil
}

func (a *app) coinTransferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <creator> <receiver> <coin-amount>",
		Short: "Transfer creator coins to another account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			nanos, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			return a.submit(cmd, rpc.TransferCreatorCoinMethod, func(ctx context.Context, c *rpc.Client) (rpc.SubmitTransactionResponse, error) {
				return c.SendCreatorCoin(ctx, args[0], args[1], nanos)
			})
		},
	}
}
