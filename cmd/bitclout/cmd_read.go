package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Muvon/bitclout-node-api/pkg/keys"
	"github.com/Muvon/bitclout-node-api/pkg/rpc"
)

// lookupFor treats anything that decodes as an address as a public key
// and the rest as a username.
func lookupFor(search string) rpc.Lookup {
	if _, _, err := keys.DecodeAddress(search); err == nil {
		return rpc.ByPublicKey
	}
	return rpc.ByUsername
}

func (a *app) nodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "node",
		Short: "Show the chain tip of the read node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			res, err := client.GetLastBlock(cmd.Context())
			if err != nil {
				return err
			}
			if res.Header == nil {
				return rpc.ErrNotFound
			}
			renderHeader(cmd, res.Header)
			return nil
		},
	}
}

func (a *app) blockCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "block <height|hash>",
		Short: "Show a block by height or hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}

			var res rpc.BlockResponse
			if height, perr := strconv.ParseUint(args[0], 10, 64); perr == nil {
				res, err = client.GetBlockByHeight(cmd.Context(), height, full)
			} else {
				res, err = client.GetBlockByHash(cmd.Context(), args[0], full)
			}
			if err != nil {
				return err
			}
			if res.Header == nil {
				return rpc.ErrNotFound
			}
			renderHeader(cmd, res.Header)
			if full {
				renderTransactions(cmd, res.Transactions)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "include the block transactions")
	return cmd
}

func renderHeader(cmd *cobra.Command, h *rpc.BlockHeader) {
	renderFields(cmd.OutOrStdout(),
		"Height", h.Height,
		"Hash", h.BlockHashHex,
		"Previous", h.PrevBlockHashHex,
		"Time", unixTime(h.TstampSecs),
	)
}

func (a *app) balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [public-key]",
		Short: "Show the DESO balance of a key, the configured one by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			publicKey := ""
			if len(args) == 1 {
				publicKey = args[0]
			}
			res, err := client.GetBalance(cmd.Context(), publicKey)
			if err != nil {
				return err
			}
			if publicKey == "" {
				publicKey = client.PublicKey()
			}
			renderFields(cmd.OutOrStdout(),
				"Public key", publicKey,
				"Confirmed", deso(res.ConfirmedBalanceNanos),
				"Unconfirmed", deso(res.UnconfirmedBalanceNanos),
			)
			return nil
		},
	}
}

func (a *app) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <username|public-key>",
		Short: "Show a profile and its creator coin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			p, err := client.GetProfile(cmd.Context(), args[0], lookupFor(args[0]))
			if err != nil {
				return err
			}
			renderFields(cmd.OutOrStdout(),
				"Username", p.Username,
				"Public key", p.PublicKeyBase58Check,
				"Verified", p.IsVerified,
				"Coin price", deso(p.CoinPriceDeSoNanos),
				"Holders", p.CoinEntry.NumberOfHolders,
				"Locked", deso(p.CoinEntry.DeSoLockedNanos),
				"Description", truncate(p.Description, 80),
			)
			return nil
		},
	}
}

func (a *app) postsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "posts [username|public-key]",
		Short: "List the latest posts of an account, or of the global feed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}

			var posts []rpc.Post
			if len(args) == 1 {
				res, err := client.GetAccountPosts(cmd.Context(), args[0], lookupFor(args[0]), limit)
				if err != nil {
					return err
				}
				posts = res.Posts
			} else {
				if posts, err = client.GetPosts(cmd.Context(), "", time.Time{}, limit); err != nil {
					return err
				}
			}

			t := newTable(cmd.OutOrStdout(), "Hash", "Author", "Likes", "Diamonds", "Body")
			for _, p := range posts {
				author := p.PosterPublicKeyBase58Check
				if p.ProfileEntryResponse != nil {
					author = p.ProfileEntryResponse.Username
				}
				t.AppendRow([]any{p.PostHashHex, author, p.LikeCount, p.DiamondCount, truncate(p.Body, 60)})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of posts to fetch")
	return cmd
}

func (a *app) exchangeRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exchange-rate",
		Short: "Show the DESO exchange rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.nodeClient()
			if err != nil {
				return err
			}
			res, err := client.GetExchangeRate(cmd.Context())
			if err != nil {
				return err
			}
			renderFields(cmd.OutOrStdout(),
				"Satoshis per DESO", res.SatoshisPerDeSoExchangeRate,
				"USD cents per DESO", res.USDCentsPerDeSoExchangeRate,
				"Nanos sold", res.NanosSold,
			)
			return nil
		},
	}
}
