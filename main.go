package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"library-circulation/config"
	"library-circulation/library"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "library-circulation",
		Short: "Library circulation and fines ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			runMainMenu(engine)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "library.yaml", "path to config file")

	root.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the data collections and seed the default admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := openEngine(); err != nil {
				return err
			}
			fmt.Println("Collections initialized.")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "report",
		Short: "Print the admin summary report",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := openEngine()
			if err != nil {
				return err
			}
			rep, err := engine.BuildReport(5)
			if err != nil {
				return err
			}
			printReport(rep)
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openEngine() (*library.Engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return library.Open(cfg.DataDir, cfg.SeedDefaultAdmin, cfg.Logger())
}

func runMainMenu(engine *library.Engine) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Println("\n1. Admin Login\n2. Student Login\n3. Exit")
		switch prompt(scanner, "Choice: ") {
		case "1":
			adminLogin(scanner, engine)
		case "2":
			studentLogin(scanner, engine)
		default:
			fmt.Println("Goodbye!")
			return
		}
	}
}

// prompt reads one trimmed line, returning "" on EOF.
func prompt(sc *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

// promptInt re-asks until the operator types an integer.
func promptInt(sc *bufio.Scanner, label string) int {
	for {
		raw := prompt(sc, label)
		n, err := strconv.Atoi(raw)
		if err == nil {
			return n
		}
		fmt.Println("Please enter a number.")
	}
}

// readPassword reads a masked credential from the terminal.
func readPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return strings.TrimSpace(string(raw)), nil
}

func printReport(rep *library.Report) {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("          ADMIN REPORTS")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("Total Fine Collected : Rs. %d\n", rep.TotalFineCollected)
	fmt.Println("Most Issued Books:")
	for _, b := range rep.MostIssuedBooks {
		fmt.Printf("Book ID: %s | Times Issued: %d\n", b.BookID, b.Count)
	}
	fmt.Println("\nStudents with Highest Fines:")
	for _, s := range rep.TopFinedStudents {
		fmt.Printf("ID: %s | Name: %s | Total Fine: Rs. %d\n", s.StudentID, s.Name, s.Total)
	}
	fmt.Println("\nBlocked Students:")
	for _, s := range rep.BlockedStudents {
		fmt.Printf("ID: %s | Name: %s | Status: %s\n", s.ID, s.Name, s.Status)
	}
	fmt.Println(strings.Repeat("=", 50))
}
