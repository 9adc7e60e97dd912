package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL   string
	walletURL string
	timeout   time.Duration
	token     string
)

// Swappable for tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "ridepay-cli",
		Short: "RidePay CLI tool",
		Long:  `A command line interface for interacting with the RidePay payment API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the payment API")
	rootCmd.PersistentFlags().StringVar(&walletURL, "wallet-url", "http://localhost:8081", "Base URL of the wallet API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("RIDEPAY_TOKEN"), "Bearer token (defaults to RIDEPAY_TOKEN)")

	// Wallet commands
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}
	walletCmd.AddCommand(creditCmd(), getWalletCmd())
	rootCmd.AddCommand(walletCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(listEntriesCmd(), balanceCmd())
	rootCmd.AddCommand(ledgerCmd)

	// Admin commands
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin operations",
	}
	adminCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(adminCmd)

	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func creditCmd() *cobra.Command {
	var amount, rideID string

	cmd := &cobra.Command{
		Use:   "credit",
		Short: "Credit the authenticated user's wallet",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{"amount": amount}
			if rideID != "" {
				payload["ride_id"] = rideID
			}

			body, _ := json.Marshal(payload)
			req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/wallet/credit", strings.NewReader(string(body)))
			if err != nil {
				fatal("failed to build request: %v", err)
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Idempotency-Key", uuid.NewString())

			result := doRequest(req)
			printJSON(result)
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Amount to credit (decimal string)")
	cmd.Flags().StringVar(&rideID, "ride", "", "Optional ride ID the credit relates to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func getWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the authenticated user's wallet",
		Run: func(cmd *cobra.Command, args []string) {
			req, err := http.NewRequest(http.MethodGet, walletURL+"/api/v1/users/me/wallet", nil)
			if err != nil {
				fatal("failed to build request: %v", err)
			}

			printJSON(doRequest(req))
		},
	}
}

func listEntriesCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List the authenticated user's ledger entries",
		Run: func(cmd *cobra.Command, args []string) {
			url := fmt.Sprintf("%s/api/v1/ledger/entries?limit=%d&offset=%d", baseURL, limit, offset)
			req, err := http.NewRequest(http.MethodGet, url, nil)
			if err != nil {
				fatal("failed to build request: %v", err)
			}

			result := doRequest(req)
			printEntries(result)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Entries to skip")

	return cmd
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the ledger-derived balance",
		Run: func(cmd *cobra.Command, args []string) {
			req, err := http.NewRequest(http.MethodGet, baseURL+"/api/v1/ledger/balance", nil)
			if err != nil {
				fatal("failed to build request: %v", err)
			}

			printJSON(doRequest(req))
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [user-id]",
		Short: "Run reconciliation (full report, or one user)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			url := baseURL + "/api/v1/admin/reconciliation/report"
			if len(args) == 1 {
				url = baseURL + "/api/v1/admin/reconciliation/" + args[0]
			}

			req, err := http.NewRequest(http.MethodGet, url, nil)
			if err != nil {
				fatal("failed to build request: %v", err)
			}

			printJSON(doRequest(req))
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Hash a password for seeding users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			fmt.Println(string(hash))
			return nil
		},
	}
}

func doRequest(req *http.Request) map[string]any {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fatal("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fatal("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fatal("failed to parse response: %v", err)
	}

	return result
}

func printEntries(result map[string]any) {
	entries, ok := result["entries"].([]any)
	if !ok || len(entries) == 0 {
		fmt.Println("no entries")
		return
	}

	fmt.Printf("%-28s %-12s %-10s %-14s\n", "ID", "AMOUNT", "STATUS", "RIDE")
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		rideID := "-"
		if r, ok := entry["ride_id"].(string); ok && r != "" {
			rideID = r
		}

		fmt.Printf("%-28s %-12v %-10v %-14s\n",
			truncate(fmt.Sprint(entry["id"]), 28),
			entry["amount"],
			entry["status"],
			truncate(rideID, 14))
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal("failed to encode output: %v", err)
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func fatal(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
	os.Exit(1)
}
