package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"home-budget/domain"
	"home-budget/repository"
	"home-budget/service"
)

var (
	flagIncome  float64
	flagSavings float64
	flagTrust   float64
	flagCity    string
	flagRate    float64
	flagJSON    bool
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate a budget from the command line",
	Example: `  home-budget calc --income 250000 --savings 250000 --trust 5000000 --city NYC --rate 6
  home-budget calc --income 120000 --savings 80000 --city "Summit NJ" --rate 7 --policy haircut --json`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().Float64Var(&flagIncome, "income", 0, "Annual household income")
	calcCmd.Flags().Float64Var(&flagSavings, "savings", 0, "Total savings")
	calcCmd.Flags().Float64Var(&flagTrust, "trust", 0, "Trust fund amount, 0 for none")
	calcCmd.Flags().StringVar(&flagCity, "city", "", "City name")
	calcCmd.Flags().Float64Var(&flagRate, "rate", 7, "Annual interest rate in percent")
	calcCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the rounded result as JSON")
	_ = calcCmd.MarkFlagRequired("income")
	_ = calcCmd.MarkFlagRequired("city")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	input := domain.ApplicantInput{
		AnnualIncome:    flagIncome,
		TotalSavings:    flagSavings,
		HasTrustFund:    flagTrust > 0,
		TrustFundAmount: flagTrust,
		City:            flagCity,
		InterestRate:    flagRate,
	}
	if err := checkCalcInput(input, cat.Cities); err != nil {
		return err
	}

	budget := service.NewBudgetService(cat.Cities, cat.Policies, repository.NewMockCache(), zap.NewNop())
	result, err := budget.Calculate(context.Background(), input, cfg.Policy)
	if err != nil {
		return err
	}
	result = service.RoundResult(result)

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	explanations := service.NewExplanationService("", "", "", zap.NewNop())
	printBreakdown(cmd.OutOrStdout(), result, explanations.Summary(result))
	return nil
}

func checkCalcInput(in domain.ApplicantInput, cities domain.CityTable) error {
	switch {
	case in.AnnualIncome < 0 || in.AnnualIncome > service.MaxAnnualIncome:
		return fmt.Errorf("--income must be between 0 and %s", humanize.Commaf(service.MaxAnnualIncome))
	case in.TotalSavings < 0 || in.TotalSavings > service.MaxFunds:
		return fmt.Errorf("--savings must be between 0 and %s", humanize.Commaf(service.MaxFunds))
	case in.TrustFundAmount < 0 || in.TrustFundAmount > service.MaxFunds:
		return fmt.Errorf("--trust must be between 0 and %s", humanize.Commaf(service.MaxFunds))
	case in.InterestRate < service.MinInterestRate || in.InterestRate > service.MaxInterestRate:
		return fmt.Errorf("--rate must be between %.1f and %.1f", service.MinInterestRate, service.MaxInterestRate)
	case !cities.Contains(in.City):
		return fmt.Errorf("unknown city %q, choose one of: %s", in.City, strings.Join(cities.Names(), ", "))
	}
	return nil
}

func money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

func printBreakdown(w io.Writer, r domain.BudgetResult, summary string) {
	a, d, c := r.Affordability, r.DownPayment, r.MonthlyCosts

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Home price        %s  (policy %s, limited by %s)\n",
		money(a.HomePrice), r.Policy, strings.ReplaceAll(string(a.LimitingFactor), "_", " "))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Down payment")
	fmt.Fprintf(w, "    Required        %s\n", money(d.Required))
	fmt.Fprintf(w, "    From savings    %s\n", money(d.FromSavings))
	fmt.Fprintf(w, "    From income     %s\n", money(d.FromIncome))
	fmt.Fprintf(w, "    From trust      %s\n", money(d.FromTrust))
	fmt.Fprintf(w, "    Total           %s\n", money(d.Total))
	if d.Shortfall > 0 {
		fmt.Fprintf(w, "    Shortfall       %s\n", money(d.Shortfall))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Monthly costs")
	fmt.Fprintf(w, "    Mortgage        %s\n", money(c.Mortgage))
	fmt.Fprintf(w, "    Property tax    %s\n", money(c.PropertyTax))
	fmt.Fprintf(w, "    Insurance       %s\n", money(c.Insurance))
	fmt.Fprintf(w, "    HOA             %s\n", money(c.HOA))
	if c.TrustFundCredit > 0 {
		fmt.Fprintf(w, "    Trust credit   -%s\n", money(c.TrustFundCredit))
	}
	fmt.Fprintf(w, "    Total           %s\n", money(c.Total))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n\n", summary)
}
