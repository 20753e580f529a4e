package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/Muvon/bitclout-node-api/pkg/log"
	"github.com/Muvon/bitclout-node-api/pkg/rpc"
)

// app holds what the commands of one invocation share. The client and
// the history store are opened on first use.
type app struct {
	envFile     string
	showMetrics bool

	cfg      Config
	logger   log.Logger
	registry *prometheus.Registry
	metrics  *rpc.Metrics

	client  *rpc.Client
	history *History
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "bitclout",
		Short:        "BitClout node API client",
		Long:         "Query a BitClout node and build, sign and submit transactions with a seed-phrase derived key.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close(cmd)
		},
	}
	rootCmd.SetUsageTemplate(rootCmd.UsageTemplate() + "\n" + envUsage() + "\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", defaultEnvFile, "dotenv file loaded before reading the environment")
	flags.BoolVar(&a.showMetrics, "metrics", false, "print node call metrics after the command")

	rootCmd.AddCommand(
		a.keysCmd(),
		a.txCmd(),
		a.nodeCmd(),
		a.blockCmd(),
		a.balanceCmd(),
		a.profileCmd(),
		a.postsCmd(),
		a.exchangeRateCmd(),
		a.sendCmd(),
		a.postCmd(),
		a.messageCmd(),
		a.followCmd(false),
		a.followCmd(true),
		a.likeCmd(false),
		a.likeCmd(true),
		a.diamondsCmd(),
		a.coinCmd(),
		a.historyCmd(),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = log.NewZapLogger(cfg.Log).WithName("bitclout")
	a.registry = prometheus.NewRegistry()
	a.metrics = rpc.NewMetricsWithRegistry(a.registry)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(log.SetContextLogger(ctx, a.logger.WithKV("command", cmd.Name())))
	return nil
}

func (a *app) close(cmd *cobra.Command) error {
	if a.showMetrics {
		if err := renderMetrics(cmd.OutOrStdout(), a.registry); err != nil {
			return err
		}
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			return err
		}
		a.history = nil
	}
	return nil
}

func (a *app) nodeClient() (*rpc.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	client, err := rpc.New(a.cfg.Node,
		rpc.WithLogger(a.logger),
		rpc.WithMetrics(a.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create node client: %w", err)
	}
	a.client = client
	return client, nil
}

func (a *app) historyStore() (*History, error) {
	if a.history != nil {
		return a.history, nil
	}
	h, err := NewHistory(a.cfg.History.Path)
	if err != nil {
		return nil, err
	}
	a.history = h
	return h, nil
}

// recordSubmission stores an accepted transaction. The transaction is
// already on the node, so a failure here is logged and not returned.
func (a *app) recordSubmission(ctx context.Context, method rpc.Method, res rpc.SubmitTransactionResponse) {
	if a.cfg.History.Disabled {
		return
	}
	lg := log.FromContext(ctx)

	h, err := a.historyStore()
	if err != nil {
		lg.Warn("history unavailable", "error", err)
		return
	}
	publicKey := ""
	if a.client != nil {
		publicKey = a.client.PublicKey()
	}
	if err := h.Record(ctx, res.TxnHashHex, method.String(), publicKey); err != nil {
		lg.Warn("failed to record submission", "txnHashHex", res.TxnHashHex, "error", err)
	}
}
