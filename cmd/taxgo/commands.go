package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/taxgo/internal/breakeven"
	"github.com/rgehrsitz/taxgo/internal/compare"
	"github.com/rgehrsitz/taxgo/internal/config"
	"github.com/rgehrsitz/taxgo/internal/domain"
	"github.com/rgehrsitz/taxgo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// amountFlag parses a money flag. Amounts are read as text so no float ever
// touches the value.
func amountFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, err := cmd.Flags().GetString(name)
	if err != nil {
		return decimal.Zero, err
	}
	raw = strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""), "$")
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domain.NewInputError(name, fmt.Sprintf("%q is not a number", raw))
	}
	return d, nil
}

// statusFlag parses --status, falling back to the filing_status setting
func (c *cli) statusFlag(cmd *cobra.Command) (domain.FilingStatus, error) {
	raw, err := cmd.Flags().GetString("status")
	if err != nil {
		return "", err
	}
	if raw == "" {
		raw = c.settings.FilingStatus
	}
	return domain.ParseFilingStatus(raw)
}

var saveExtensions = map[string]string{"console": "txt", "json": "json", "csv": "csv", "html": "html"}

func (c *cli) render(cmd *cobra.Command, report *output.Report) error {
	if err := output.Render(cmd.OutOrStdout(), report, c.settings.Format); err != nil {
		return err
	}
	if !c.save {
		return nil
	}
	filename, err := output.WriteFormatted(output.GetFormatterByName(c.settings.Format), report, saveExtensions[c.settings.Format])
	if err != nil {
		return err
	}
	Log.Infof("report saved to %s", filename)
	fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", filename)
	return nil
}

// renderSideBySide prints only the two-column comparison in the configured format
func (c *cli) renderSideBySide(cmd *cobra.Command, result *domain.ComparisonResult) error {
	var (
		text string
		err  error
	)
	switch c.settings.Format {
	case "console":
		text = (&compare.TableFormatter{}).Format(result)
	case "csv":
		text, err = (&compare.CSVFormatter{}).Format(result)
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).Format(result)
		text += "\n"
	default:
		return fmt.Errorf("side-by-side output supports console, csv and json, not %s", c.settings.Format)
	}
	if err != nil {
		return fmt.Errorf("failed to format comparison: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}

func addStatusFlags(cmd *cobra.Command) {
	cmd.Flags().String("status", "", "filing status: single, married_jointly (mfj), head_of_household (hoh)")
	cmd.Flags().Int("dependents", 0, "number of qualifying children")
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().String("income", "", "gross income")
	cmd.Flags().String("expenses", "", "business expenses (self-employed only)")
	cmd.Flags().String("retirement", "", "SEP-IRA style retirement contribution")
	cmd.Flags().String("insurance", "", "wealth policy contribution, reduces take-home only")
	addStatusFlags(cmd)
}

// scenarioInput reads the shared scenario flags
func (c *cli) scenarioInput(cmd *cobra.Command) (domain.ComparisonInput, error) {
	in, err := c.wageInput(cmd)
	if err != nil {
		return in, err
	}
	if in.BusinessExpenses, err = amountFlag(cmd, "expenses"); err != nil {
		return in, err
	}
	if in.RetirementContribution, err = amountFlag(cmd, "retirement"); err != nil {
		return in, err
	}
	if in.InsuranceContribution, err = amountFlag(cmd, "insurance"); err != nil {
		return in, err
	}
	return in, nil
}

// wageInput reads the income, status and dependents flags shared by every scenario
func (c *cli) wageInput(cmd *cobra.Command) (domain.ComparisonInput, error) {
	var in domain.ComparisonInput
	var err error
	if in.GrossIncome, err = amountFlag(cmd, "income"); err != nil {
		return in, err
	}
	if in.FilingStatus, err = c.statusFlag(cmd); err != nil {
		return in, err
	}
	if in.Dependents, err = cmd.Flags().GetInt("dependents"); err != nil {
		return in, err
	}
	return in, nil
}

func loadProfile(path string) (*domain.Profile, error) {
	profile, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	Log.Infof("loaded profile %q from %s", profile.Name, path)
	return profile, nil
}

func (c *cli) marginalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "marginal",
		Short: "Apply the progressive brackets to an income",
		Example: `  taxgo marginal --income 50000
  taxgo marginal --income 250000 --status mfj --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			income, err := amountFlag(cmd, "income")
			if err != nil {
				return err
			}
			status, err := c.statusFlag(cmd)
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			result, err := engine.ComputeMarginalTax(income, status)
			if err != nil {
				return err
			}
			report := output.NewReport("Marginal Tax", engine.TaxYear())
			report.Marginal = result
			return c.render(cmd, report)
		},
	}
	cmd.Flags().String("income", "", "income before the standard deduction")
	cmd.Flags().String("status", "", "filing status: single, married_jointly (mfj), head_of_household (hoh)")
	return cmd
}

func (c *cli) w2Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "w2",
		Short: "Calculate the tax of a W-2 employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.wageInput(cmd)
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			result, err := engine.ComputeW2Scenario(in.GrossIncome, in.FilingStatus, in.Dependents)
			if err != nil {
				return err
			}
			report := output.NewReport("W-2 Employment", engine.TaxYear())
			report.W2 = result
			return c.render(cmd, report)
		},
	}
	cmd.Flags().String("income", "", "gross wages")
	addStatusFlags(cmd)
	return cmd
}

func (c *cli) selfEmployedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "self-employed",
		Aliases: []string{"se"},
		Short:   "Calculate the tax of a self-employed filer",
		Example: `  taxgo self-employed --income 85000 --expenses 12000 --status mfj --dependents 2`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.scenarioInput(cmd)
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			result, err := engine.ComputeSelfEmploymentScenario(in.SelfEmployment())
			if err != nil {
				return err
			}
			report := output.NewReport("Self-Employment", engine.TaxYear())
			report.SelfEmployment = result
			return c.render(cmd, report)
		},
	}
	addScenarioFlags(cmd)
	return cmd
}

// comparisonInput reads the scenario from a profile file when one is given,
// otherwise from flags. A profile's tax year overrides the configured one.
func (c *cli) comparisonInput(cmd *cobra.Command, args []string) (domain.ComparisonInput, int, error) {
	if len(args) == 1 {
		profile, err := loadProfile(args[0])
		if err != nil {
			return domain.ComparisonInput{}, 0, err
		}
		return profile.ComparisonInput(), profile.TaxYear, nil
	}
	in, err := c.scenarioInput(cmd)
	return in, c.settings.TaxYear, err
}

func (c *cli) compareCmd() *cobra.Command {
	var sideBySide bool
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare W-2 and self-employment taxes on the same income",
		Long: `Compare W-2 and self-employment taxes on the same gross income.

Inputs come from a YAML or JSON profile, or from flags when no file is given.
A profile's tax_year selects the rules unless --rules is set.`,
		Example: `  taxgo compare profile.yaml
  taxgo compare --income 85000 --expenses 12000 --status mfj --dependents 2
  taxgo compare request.json --format csv
  taxgo compare profile.yaml --side-by-side --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, year, err := c.comparisonInput(cmd, args)
			if err != nil {
				return err
			}
			engine, err := c.engineFor(year)
			if err != nil {
				return err
			}
			result, err := compare.NewCompareEngine(engine).Compare(in)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			if sideBySide {
				return c.renderSideBySide(cmd, result)
			}
			report := output.NewReport("Tax Comparison", engine.TaxYear())
			report.Comparison = result
			return c.render(cmd, report)
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().BoolVar(&sideBySide, "side-by-side", false, "print only the two-column comparison table")
	return cmd
}

func (c *cli) breakEvenCmd() *cobra.Command {
	var maxIterations int
	cmd := &cobra.Command{
		Use:     "break-even [input-file]",
		Aliases: []string{"breakeven"},
		Short:   "Find where self-employment matches the W-2 scenario",
		Long: `Solve for the business expenses that bring self-employment tax down to
the W-2 total, and for the gross income that matches W-2 take-home pay.`,
		Example: `  taxgo break-even profile.yaml
  taxgo break-even --income 85000 --expenses 12000 --status mfj --dependents 2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, year, err := c.comparisonInput(cmd, args)
			if err != nil {
				return err
			}
			engine, err := c.engineFor(year)
			if err != nil {
				return err
			}
			opts := breakeven.DefaultSolverOptions()
			if maxIterations > 0 {
				opts.MaxIterations = maxIterations
			}
			analysis, err := breakeven.NewSolver(engine, opts).Analyze(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("break-even analysis failed: %w", err)
			}
			report := output.NewReport("Break-Even Analysis", engine.TaxYear())
			report.BreakEven = analysis
			return c.render(cmd, report)
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "bisection iteration limit (default 100)")
	return cmd
}

func (c *cli) quarterlyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quarterly",
		Short: "Plan quarterly estimated tax payments",
		Long: `Split the tax not yet withheld into four estimated payments.

Give either the expected annual tax (--annual-tax) or the projected income
(--income, with --status), whose tax is computed from the brackets.`,
		Example: `  taxgo quarterly --annual-tax 10487.71
  taxgo quarterly --income 120000 --status single --withheld 5000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			annualSet := cmd.Flags().Changed("annual-tax")
			incomeSet := cmd.Flags().Changed("income")
			if annualSet == incomeSet {
				return fmt.Errorf("give exactly one of --annual-tax or --income")
			}
			withheld, err := amountFlag(cmd, "withheld")
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}

			var plan *domain.QuarterlyPlan
			if annualSet {
				annual, err := amountFlag(cmd, "annual-tax")
				if err != nil {
					return err
				}
				plan, err = engine.EstimateQuarterlyPayments(annual, withheld)
				if err != nil {
					return err
				}
			} else {
				income, err := amountFlag(cmd, "income")
				if err != nil {
					return err
				}
				status, err := c.statusFlag(cmd)
				if err != nil {
					return err
				}
				plan, err = engine.EstimateQuarterlyFromIncome(income, status, withheld)
				if err != nil {
					return err
				}
			}

			report := output.NewReport("Quarterly Estimated Taxes", engine.TaxYear())
			report.Quarterly = plan
			return c.render(cmd, report)
		},
	}
	cmd.Flags().String("annual-tax", "", "expected total tax for the year")
	cmd.Flags().String("income", "", "projected income, taxed with the brackets")
	cmd.Flags().String("status", "", "filing status when --income is used")
	cmd.Flags().String("withheld", "", "tax already withheld or paid this year")
	return cmd
}

// expenseFlags parses repeated --expense category=amount pairs
func expenseFlags(cmd *cobra.Command) (map[domain.ExpenseCategory]decimal.Decimal, error) {
	pairs, err := cmd.Flags().GetStringToString("expense")
	if err != nil {
		return nil, err
	}
	expenses := make(map[domain.ExpenseCategory]decimal.Decimal, len(pairs))
	for name, raw := range pairs {
		category, err := domain.ParseExpenseCategory(name)
		if err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, domain.NewInputError("expenses."+string(category), fmt.Sprintf("%q is not a number", raw))
		}
		expenses[category] = amount
	}
	return expenses, nil
}

func (c *cli) optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [input-file]",
		Short: "Check business expenses against industry benchmarks",
		Long: fmt.Sprintf(`Compare each expense category's share of revenue with its benchmark and
flag the categories spent more than 20%% above it.

Categories: %s`, categoryList()),
		Example: `  taxgo optimize profile.yaml
  taxgo optimize --revenue 100000 --expense cogs=40000 --expense marketing=15000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := c.settings.TaxYear
			var revenue decimal.Decimal
			var expenses map[domain.ExpenseCategory]decimal.Decimal
			if len(args) == 1 {
				profile, err := loadProfile(args[0])
				if err != nil {
					return err
				}
				revenue, expenses, year = profile.Revenue, profile.Expenses, profile.TaxYear
				if revenue.IsZero() {
					revenue = profile.GrossIncome
				}
			} else {
				var err error
				if revenue, err = amountFlag(cmd, "revenue"); err != nil {
					return err
				}
				if expenses, err = expenseFlags(cmd); err != nil {
					return err
				}
			}

			engine, err := c.engineFor(year)
			if err != nil {
				return err
			}
			result, err := engine.OptimizeExpenses(revenue, expenses)
			if err != nil {
				return err
			}
			report := output.NewReport("Expense Optimization", engine.TaxYear())
			report.Optimization = result
			return c.render(cmd, report)
		},
	}
	cmd.Flags().String("revenue", "", "business revenue")
	cmd.Flags().StringToString("expense", nil, "expense as category=amount, repeatable")
	return cmd
}

func categoryList() string {
	names := make([]string, len(domain.ExpenseCategories))
	for i, c := range domain.ExpenseCategories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func (c *cli) recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Suggest deductible expense allocations from revenue",
		Long: `Suggest deductible expenses as fixed shares of revenue.

This is a heuristic planning aid: savings use a flat assumed marginal rate,
not a tax-law computation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			revenue, err := amountFlag(cmd, "revenue")
			if err != nil {
				return err
			}
			current, err := amountFlag(cmd, "current-expenses")
			if err != nil {
				return err
			}
			engine, err := c.engine()
			if err != nil {
				return err
			}
			rec, err := engine.RecommendExpenses(revenue, current)
			if err != nil {
				return err
			}
			report := output.NewReport("Expense Recommendations", engine.TaxYear())
			report.Recommendation = rec
			return c.render(cmd, report)
		},
	}
	cmd.Flags().String("revenue", "", "business revenue")
	cmd.Flags().String("current-expenses", "", "expenses already tracked this year")
	return cmd
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile(args[0])
			if err != nil {
				return err
			}
			if _, err := config.RulesForYear(profile.TaxYear); err != nil && c.settings.RulesFile == "" {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile file %s is valid\n", args[0])
			return nil
		},
	}
}

func (c *cli) rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the tax rules in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.engine()
			if err != nil {
				return err
			}
			r := engine.Rules
			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "TAX RULES %d\n", r.TaxYear)
			if r.Description != "" {
				fmt.Fprintln(w, r.Description)
			}
			fmt.Fprintf(w, "Embedded years: %v\n\n", config.AvailableYears())

			for _, status := range domain.FilingStatuses {
				deduction, err := r.StandardDeductionFor(status)
				if err != nil {
					return err
				}
				table, err := r.BracketsFor(status)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s (standard deduction %s)\n", status.Label(), domain.FormatDollars(deduction, 0))
				lower := decimal.Zero
				for _, b := range table {
					label := domain.BracketContribution{LowerBound: lower, UpperBound: b.UpperBound}.RangeLabel()
					fmt.Fprintf(w, "  %-26s %s\n", label, output.FormatRate(b.Rate))
					if b.UpperBound != nil {
						lower = *b.UpperBound
					}
				}
				fmt.Fprintln(w)
			}

			fmt.Fprintf(w, "Self-employment tax: %s of %s of net earnings\n",
				output.FormatRate(r.SelfEmployment.TaxRate), output.FormatRate(r.SelfEmployment.NetEarningsFactor))
			fmt.Fprintf(w, "Social Security wage base: %s\n", domain.FormatDollars(r.FICA.SocialSecurityWageBase, 0))
			fmt.Fprintf(w, "Child tax credit: %s per dependent\n", domain.FormatDollars(r.ChildTaxCreditPerDependent, 0))

			benchmarks := make([]string, 0, len(r.Expenses.Benchmarks))
			for _, b := range r.Expenses.Benchmarks {
				benchmarks = append(benchmarks, fmt.Sprintf("%s %s", b.Category, output.FormatRate(b.Ratio)))
			}
			sort.Strings(benchmarks)
			fmt.Fprintf(w, "Expense benchmarks: %s\n", strings.Join(benchmarks, ", "))
			return nil
		},
	}
}
