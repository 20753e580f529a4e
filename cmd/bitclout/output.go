package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Muvon/bitclout-node-api/pkg/rpc"
)

func newTable(out io.Writer, header ...any) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	if len(header) > 0 {
		t.AppendHeader(table.Row(header))
	}
	return t
}

// renderFields prints key/value pairs as a two column table.
func renderFields(out io.Writer, kv ...any) {
	t := newTable(out)
	for i := 0; i+1 < len(kv); i += 2 {
		t.AppendRow(table.Row{kv[i], kv[i+1]})
	}
	t.Render()
}

func deso(nanos uint64) string {
	return rpc.NanosToDeSo(nanos).StringFixed(9) + " DESO"
}

func unixTime(secs uint64) string {
	return time.Unix(int64(secs), 0).UTC().Format(time.RFC3339)
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

func renderSubmission(out io.Writer, res rpc.SubmitTransactionResponse) {
	renderFields(out, "Transaction", res.TxnHashHex)
}

func renderUnsigned(out io.Writer, utx rpc.UnsignedTransaction, extra ...any) {
	kv := []any{
		"Transaction ID", utx.TransactionIDBase58Check,
		"Total input", deso(utx.TotalInputNanos),
		"Change", deso(utx.ChangeAmountNanos),
		"Fee", deso(utx.FeeNanos),
	}
	renderFields(out, append(kv, extra...)...)
}

// renderMetrics prints every counter and histogram sample of registry.
func renderMetrics(out io.Writer, registry prometheus.Gatherer) error {
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	t := newTable(out, "Metric", "Labels", "Value")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := formatLabels(m.GetLabel())
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				t.AppendRow(table.Row{mf.GetName(), labels, m.GetCounter().GetValue()})
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				t.AppendRow(table.Row{mf.GetName() + "_count", labels, h.GetSampleCount()})
				t.AppendRow(table.Row{mf.GetName() + "_sum", labels, fmt.Sprintf("%.3f", h.GetSampleSum())})
			}
		}
	}
	t.Render()
	return nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
