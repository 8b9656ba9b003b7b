package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/payoff/internal/calc"
	"github.com/theirongolddev/payoff/internal/cli"
	"github.com/theirongolddev/payoff/internal/config"
)

var (
	flagInvestMonthly float64
	flagInvestReturn  float64
	flagInvestYears   float64
)

var investCmd = &cobra.Command{
	Use:   "invest",
	Short: "Project growth of a monthly investment",
	Args:  cobra.NoArgs,
	RunE:  runInvest,
}

func init() {
	def := config.DefaultConfig().Invest
	investCmd.Flags().Float64Var(&flagInvestMonthly, "monthly", def.MonthlyContribution, "Monthly contribution")
	investCmd.Flags().Float64Var(&flagInvestReturn, "return", def.AnnualReturnPct, "Expected annual return, percent")
	investCmd.Flags().Float64Var(&flagInvestYears, "years", def.Years, "Horizon in years")
	rootCmd.AddCommand(investCmd)
}

func runInvest(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	// Config supplies defaults; explicit flags win.
	in := a.cfg.Invest
	flags := cmd.Flags()
	if flags.Changed("monthly") {
		in.MonthlyContribution = flagInvestMonthly
	}
	if flags.Changed("return") {
		in.AnnualReturnPct = flagInvestReturn
	}
	if flags.Changed("years") {
		in.Years = flagInvestYears
	}

	r := a.renderer()
	g := calc.InvestmentBreakdown(in.MonthlyContribution, in.AnnualReturnPct, in.Years)

	fmt.Println()
	fmt.Println(r.Title(fmt.Sprintf("INVEST  %s/mo at %s for %g years",
		cli.FormatCurrency(in.MonthlyContribution), cli.FormatRate(in.AnnualReturnPct), in.Years)))
	fmt.Println()

	if g.FutureValue == 0 {
		fmt.Println("  Nothing to project: set --monthly and --years above zero.")
		return nil
	}
	if !g.Finite() {
		return fmt.Errorf("projection overflows at %s for %g years; lower --return or --years",
			cli.FormatRate(in.AnnualReturnPct), in.Years)
	}

	fmt.Print(r.KeyValues([][2]string{
		{"Future value", r.Good(cli.FormatCurrency(g.FutureValue))},
		{"Contributed", cli.FormatCurrency(g.Contributed)},
		{"Earnings", cli.FormatCurrency(g.Earnings)},
	}))
	fmt.Println()

	byYear := calc.GrowthByYear(in.MonthlyContribution, in.AnnualReturnPct, in.Years)
	rows := make([][]string, 0, len(byYear))
	for i, v := range byYear {
		rows = append(rows, []string{
			fmt.Sprintf("Year %d", i+1),
			cli.FormatCurrency(v),
			cli.FormatCurrencyShort(v - in.MonthlyContribution*12*math.Min(float64(i+1), in.Years)),
		})
	}
	fmt.Print(r.Table(cli.Table{
		Headers: []string{"", "Value", "Earned"},
		Rows:    rows,
	}))
	fmt.Printf("\n  %s\n", r.Muted(cli.Sparkline(byYear)))
	return nil
}
