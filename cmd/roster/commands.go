package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/roster/internal/app"
	"github.com/mmynk/roster/internal/calculator"
	"github.com/mmynk/roster/internal/console"
	"github.com/mmynk/roster/internal/models"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	var designation string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees, optionally for one designation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				action, title := "list_all", "All Employees"
				if designation != "" {
					action, title = "list_by_designation", designation+" Employees"
				}
				return a.Do(ctx, action, func(ctx context.Context) error {
					var (
						employees []*models.Employee
						err       error
					)
					if designation != "" {
						employees, err = a.Service.ListByDesignation(ctx, designation)
					} else {
						employees, err = a.Service.ListAll(ctx)
					}
					if err != nil {
						return err
					}
					console.WriteEmployees(cmd.OutOrStdout(), title, a.Config.CurrencySymbol, employees)
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVarP(&designation, "designation", "d", "", "exact, case-sensitive designation")
	return cmd
}

func newReportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print head count and salary totals per designation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				return a.Do(ctx, "summary_report", func(ctx context.Context) error {
					summary, err := a.Service.SummaryReport(ctx)
					if err != nil {
						return err
					}
					console.WriteSummary(cmd.OutOrStdout(), a.Config.CurrencySymbol, summary)
					return nil
				})
			})
		},
	}
}

func newSeedCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				return a.Do(ctx, "seed_demo_data", func(ctx context.Context) error {
					inserted, err := a.Service.SeedDemoData(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d demo employees.\n", inserted)
					return nil
				})
			})
		},
	}
}

func newAdjustCmd(flags *rootFlags) *cobra.Command {
	var designation, mode, amount string

	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Raise every salary in a designation by a fixed amount or a percentage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := calculator.ParseAdjustmentMode(mode)
			if err != nil {
				return err
			}
			magnitude, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}

			return withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				return a.Do(ctx, "adjust_salary", func(ctx context.Context) error {
					count, err := a.Service.AdjustSalary(ctx, designation, m, magnitude)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Updated salaries for %d %s employees\n", count, designation)
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVarP(&designation, "designation", "d", "", "designation to adjust")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(calculator.Fixed), "fixed or percentage")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount or percentage to add")
	cmd.MarkFlagRequired("designation")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recorded salary adjustments, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				return a.Do(ctx, "adjustment_history", func(ctx context.Context) error {
					history, err := a.Service.AdjustmentHistory(ctx)
					if err != nil {
						return err
					}
					console.WriteHistory(cmd.OutOrStdout(), a.Config.CurrencySymbol, history)
					return nil
				})
			})
		},
	}
}
