package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/randomtoy/moonblock-go/internal/adapters/llm/chatapi"
	"github.com/randomtoy/moonblock-go/internal/adapters/rng"
	"github.com/randomtoy/moonblock-go/internal/adapters/textbank"
	"github.com/randomtoy/moonblock-go/internal/app"
	"github.com/randomtoy/moonblock-go/internal/config"
	"github.com/randomtoy/moonblock-go/internal/domain"
	"github.com/randomtoy/moonblock-go/internal/ports"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "moonblock",
		Short:        "Cast the moon blocks about whatever is bothering you at work",
		SilenceUsage: true,
	}
	root.AddCommand(newCastCmd(), newClockOutCmd(), newRoastCmd())
	return root
}

func newCastCmd() *cobra.Command {
	var offline, fast bool
	cmd := &cobra.Command{
		Use:   "cast [complaint]",
		Short: "Run a three-throw ritual and print the verdict card",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			complaint := domain.DefaultComplaint
			if len(args) == 1 {
				text, err := domain.NormalizeComplaint(args[0])
				if err != nil {
					return err
				}
				complaint = text
			}
			return runCast(cmd.Context(), cmd.OutOrStdout(), complaint, offline, fast)
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "never call the LLM, use built-in texts only")
	cmd.Flags().BoolVar(&fast, "fast", false, "skip the dramatic pauses")
	return cmd
}

func newClockOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clockout",
		Short: "Show the time left before clocking out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			co := domain.UntilClockOut(time.Now(), cfg.ClockOutHour)
			fmt.Fprintf(cmd.OutOrStdout(), "距离下班: %s\n", co.Label())
			return nil
		},
	}
}

func newRoastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roast",
		Short: "Print a one-liner about your job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bank, err := textbank.Load()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			oracle := app.NewOracle(nil, bank, rng.Std{}, app.DefaultTiming(), logger)
			if roast := oracle.Roast(); roast != "" {
				fmt.Fprintln(cmd.OutOrStdout(), roast)
			}
			return nil
		},
	}
}

func runCast(ctx context.Context, out io.Writer, complaint string, offline, fast bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	bank, err := textbank.Load()
	if err != nil {
		return err
	}

	var teller ports.FortuneTeller
	if !offline && cfg.ServiceConfigured() {
		teller = chatapi.NewClient(
			&http.Client{Timeout: cfg.FinalCardTimeout},
			cfg.LLMAPIKey,
			cfg.LLMBaseURL,
			cfg.LLMModel,
			cfg.LLMTemperature,
			logger,
		)
	}

	timing := cfg.Timing()
	if fast {
		timing.ThrowDwell = 50 * time.Millisecond
		timing.FinalizeDelay = 200 * time.Millisecond
	}

	updates := make(chan app.Snapshot, 64)
	oracle := app.NewOracle(teller, bank, rng.Std{}, timing, logger)
	seq := app.NewSequencer(oracle, domain.NewThrowGenerator(rng.Std{}), timing, logger,
		app.WithListener(func(s app.Snapshot) { updates <- s }),
	)
	defer seq.Close()

	fmt.Fprintf(out, "所求之事: %s\n\n", complaint)
	if _, err := seq.Begin(complaint); err != nil {
		return err
	}

	p := &printer{out: out}
	var lastRev uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap := <-updates:
			if snap.Revision <= lastRev {
				continue
			}
			lastRev = snap.Revision
			p.show(snap)

			switch snap.Phase {
			case app.PhaseAwaitingThrow:
				// Rejected if a newer throw is already in flight.
				_, _ = seq.RequestThrow()
			case app.PhaseThrowSettled:
				fmt.Fprintln(out, "\n神明正在落笔...")
			case app.PhaseComplete:
				p.card(*snap.Card)
				return nil
			}
		}
	}
}

// printer writes each throw once it settles and its commentary once known.
type printer struct {
	out       io.Writer
	settled   int
	commented [domain.ThrowsPerRitual]bool
}

func (p *printer) show(snap app.Snapshot) {
	upTo := p.settled
	switch {
	case snap.LastThrow != nil:
		upTo = max(upTo, snap.LastThrow.Index+1)
	case snap.Phase == app.PhaseFinalizing || snap.Phase == app.PhaseComplete:
		upTo = len(snap.Throws)
	}
	for ; p.settled < upTo; p.settled++ {
		t := snap.Throws[p.settled]
		fmt.Fprintf(p.out, "第%d掷: %s\n", t.Index+1, t.Outcome.Name())
	}
	for i := 0; i < p.settled; i++ {
		t := snap.Throws[i]
		if p.commented[i] || t.Commentary == nil {
			continue
		}
		p.commented[i] = true
		fmt.Fprintf(p.out, "  [%d] %s\n", t.Index+1, *t.Commentary)
	}
}

func (p *printer) card(c domain.VerdictCard) {
	rule := strings.Repeat("=", 32)
	fmt.Fprintf(p.out, "\n%s\n%s\n%s\n\n【%s】\n\n%s\n\n%s\n%s\n(%s, %s)\n",
		rule, c.Title, c.Subtitle, c.StampText, c.Interpretation, c.SummaryText, rule, c.Verdict, c.Source)
}
