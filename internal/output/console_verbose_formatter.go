package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ComparisonReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "RETIREMENT CONTRIBUTION VS TAXABLE BROKERAGE ANALYSIS")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range reportAssumptions(results.Assumptions) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, sc := range results.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sc.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeInputs(&buf, sc)
		if sc.Solver != nil {
			writeSolver(&buf, sc.Solver)
		}
		writeTrajectory(&buf, "WITH CONTRIBUTION", sc.With, sc.WithWithdrawal)
		writeTrajectory(&buf, "WITHOUT CONTRIBUTION (TAXABLE BROKERAGE)", sc.Without, sc.WithoutWithdrawal)

		fmt.Fprintln(&buf, "COMPARISON:")
		fmt.Fprintf(&buf, "  Take-Home Per Paycheck:   %s (%s)\n", FormatCurrency(sc.TakeHomePerPaycheck), results.PayFrequency)
		fmt.Fprintf(&buf, "  Annual Take-Home Cost:    %s\n", FormatCurrency(sc.TakeHomeCost()))
		fmt.Fprintf(&buf, "  Future Value Advantage:   %s\n", FormatCurrency(sc.FutureValueAdvantage()))
		fmt.Fprintf(&buf, "  Lump-Sum Net Advantage:   %s\n", FormatCurrency(sc.NetWorthAdvantage()))
		if sc.BreakEven != nil {
			fmt.Fprintf(&buf, "  Break-Even:               %s years (year %d)\n", sc.BreakEven.Years.StringFixed(1), sc.BreakEven.Year)
		} else {
			fmt.Fprintln(&buf, "  Break-Even:               not reached within the horizon")
		}
		fmt.Fprintln(&buf)

		if sc.Allocation != nil {
			writeAllocation(&buf, sc.Allocation)
		}
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf, "RECOMMENDATION:")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		verdict := "contributing"
		if !rec.FavorsContribution {
			verdict = "investing in the taxable brokerage account"
		}
		fmt.Fprintf(&buf, "Best scenario: %s, where %s leaves %s (%s) more after lump-sum taxes.\n",
			rec.ScenarioName, verdict, FormatCurrency(rec.NetWorthAdvantage.Abs()), FormatPercentage(rec.AdvantagePercent.Abs()))
	}

	return buf.Bytes(), nil
}

func writeInputs(w io.Writer, sc domain.ScenarioComparison) {
	in := sc.Inputs
	fmt.Fprintln(w, "INPUTS:")
	fmt.Fprintf(w, "  Gross Salary:             %s\n", FormatCurrency(in.GrossSalary))
	fmt.Fprintf(w, "  Contribution:             %s\n", FormatPercentage(in.ContributionPercent))
	fmt.Fprintf(w, "  Employer Match:           %s of contribution\n", FormatPercentage(in.EmployerMatchPercent))
	fmt.Fprintf(w, "  Return / Horizon:         %s over %d years\n", FormatPercentage(in.ReturnPercent), in.Years)
	if in.TargetTakeHome != nil {
		fmt.Fprintf(w, "  Annual Take-Home Target:  %s\n", FormatCurrency(*in.TargetTakeHome))
	}
	if in.Roth401kCap != nil {
		fmt.Fprintf(w, "  Roth 401(k) Cap:          %s\n", FormatCurrency(*in.Roth401kCap))
	}
	fmt.Fprintln(w)
}

func writeSolver(w io.Writer, s *domain.SolverResult) {
	fmt.Fprintln(w, "SOLVER:")
	if !s.Feasible {
		fmt.Fprintf(w, "  Target %s is not reachable even with no contribution\n", FormatCurrency(s.TargetTakeHome))
	} else {
		fmt.Fprintf(w, "  Highest contribution meeting %s: %s\n", FormatCurrency(s.TargetTakeHome), FormatPercentage(s.ContributionPercent))
	}
	fmt.Fprintln(w)
}

func writeTrajectory(w io.Writer, title string, r domain.ScenarioResult, plan domain.WithdrawalPlan) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "  Taxable Income:           %s\n", FormatCurrency(r.TaxableIncome))
	fmt.Fprintf(w, "  Federal Tax:              %s\n", FormatCurrency(r.Taxes.Federal))
	fmt.Fprintf(w, "  State Tax:                %s\n", FormatCurrency(r.Taxes.State))
	fmt.Fprintf(w, "  FICA Tax:                 %s\n", FormatCurrency(r.Taxes.FICA))
	fmt.Fprintf(w, "  Take-Home Pay:            %s\n", FormatCurrency(r.TakeHomePay))
	fmt.Fprintf(w, "  Spendable Take-Home:      %s\n", FormatCurrency(r.SpendableTakeHome))
	fmt.Fprintln(w, "  Annual Contributions / Future Values:")
	writeBucket(w, "Traditional", r.Contributions.Traditional, r.FutureValues.Traditional)
	writeBucket(w, "Roth 401(k)", r.Contributions.Roth401k, r.FutureValues.Roth401k)
	writeBucket(w, "Employer Match", r.Contributions.EmployerMatch, r.FutureValues.EmployerMatch)
	writeBucket(w, "Roth IRA", r.Contributions.RothIRA, r.FutureValues.RothIRA)
	writeBucket(w, "Brokerage", r.Contributions.Brokerage, r.FutureValues.Brokerage)
	fmt.Fprintf(w, "  Total Future Value:       %s\n", FormatCurrency(r.TotalFutureValue))
	fmt.Fprintf(w, "  Lump Sum:  net %s, taxes %s (%s effective)\n",
		FormatCurrency(plan.LumpSum.Net), FormatCurrency(plan.LumpSum.Taxes), FormatPercentage(plan.LumpSum.EffectiveRate))
	fmt.Fprintf(w, "  Annual:    %s/yr for %d years, net %s/yr (%s effective)\n",
		FormatCurrency(plan.Annual.Amount), plan.Years, FormatCurrency(plan.Annual.Net), FormatPercentage(plan.Annual.EffectiveRate))
	fmt.Fprintln(w)
}

func writeBucket(w io.Writer, label string, contribution, future decimal.Decimal) {
	fmt.Fprintf(w, "    %-16s %14s  → %16s\n", label+":", FormatCurrency(contribution), FormatCurrency(future))
}

func writeAllocation(w io.Writer, a *domain.AllocationResult) {
	fmt.Fprintln(w, "ROTH / TRADITIONAL ALLOCATION:")
	fmt.Fprintf(w, "  Budget %s at %s; %d candidates evaluated\n", FormatCurrency(a.Budget), FormatPercentage(a.ContributionPercent), len(a.Candidates))
	fmt.Fprintf(w, "  Best: Roth %s / Traditional %s → lump-sum net %s\n",
		FormatCurrency(a.Best.Roth401k), FormatCurrency(a.Best.Traditional), FormatCurrency(a.Best.NetWorth))
	fmt.Fprintln(w)
}
