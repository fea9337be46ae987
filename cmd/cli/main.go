package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	infrabus "github.com/amirasaad/proppilot/infra/eventbus"
	"github.com/amirasaad/proppilot/infra/repository/remote"
	"github.com/amirasaad/proppilot/pkg/config"
	"github.com/amirasaad/proppilot/pkg/domain"
	accountsvc "github.com/amirasaad/proppilot/pkg/service/account"
	dashboardsvc "github.com/amirasaad/proppilot/pkg/service/dashboard"
	schedulesvc "github.com/amirasaad/proppilot/pkg/service/schedule"
	"github.com/fatih/color"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: cli <command> [arguments]")
		fmt.Println("Commands: list, schedule, dashboard")
		return
	}
	cmd := os.Args[1]

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		return
	}

	ctx := context.Background()
	deps := config.Deps{
		Repo:      remote.New(cfg.Persistence, logger),
		Bus:       infrabus.NewWithMemory(logger),
		Logger:    logger,
		Scheduler: cfg.Scheduler,
	}
	store := accountsvc.NewService(deps)
	if err := store.Load(ctx); err != nil {
		fmt.Println("Failed to load accounts:", err)
		return
	}

	switch cmd {
	case "list":
		accounts := store.List()
		if len(accounts) == 0 {
			fmt.Println("No accounts tracked.")
			return
		}
		for _, a := range accounts {
			printAccount(a)
		}
	case "schedule":
		svc := schedulesvc.NewService(deps, store)
		schedule, err := svc.Regenerate(ctx)
		if err != nil {
			fmt.Println("Error generating schedule:", err)
			return
		}
		byID := make(map[string]string)
		for _, a := range store.List() {
			byID[a.ID.String()] = a.Name
		}
		for _, day := range domain.Days() {
			color.New(color.Bold).Println(day)
			for _, session := range domain.Sessions() {
				fmt.Printf("  %s:", session)
				for _, id := range schedule[day][session] {
					fmt.Printf(" %s", byID[id.String()])
				}
				fmt.Println()
			}
		}
	case "dashboard":
		m := dashboardsvc.NewService(store, logger).Metrics()
		color.New(color.Bold).Println("Dashboard")
		fmt.Printf("  Total balance:     %s\n", m.TotalBalance.StringFixed(2))
		fmt.Printf("  Total costs:       %s\n", m.TotalCosts.StringFixed(2))
		fmt.Printf("  Total withdrawals: %s\n", m.TotalWithdrawals.StringFixed(2))
		fmt.Printf("  Net profit:        %s\n", m.NetProfit.StringFixed(2))
		fmt.Printf("  Success rate:      %.1f%%\n", m.WithdrawalSuccessRate)
	default:
		fmt.Println("Unknown command:", cmd)
	}
}

func printAccount(a domain.Account) {
	status := color.YellowString(string(a.Status))
	switch a.Status {
	case domain.StatusActive:
		status = color.GreenString(string(a.Status))
	case domain.StatusSuspended:
		status = color.RedString(string(a.Status))
	}
	fmt.Printf("%s  %s (%s)  size=%s cost=%s  withdrawals=%d\n",
		a.ID, a.Name, status, a.Size, a.Cost, len(a.Withdrawals))
}
