// Package main is the meval command line calculator.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/srijanmukherjee/meval"
	"github.com/srijanmukherjee/meval/api"
	"github.com/srijanmukherjee/meval/config"
	"gopkg.in/yaml.v3"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errFailed is returned once the failures have been printed.
var errFailed = errors.New("some expressions could not be evaluated")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meval [expression...]",
		Short: "Evaluate mathematical expressions",
		Long: `meval evaluates the expression made of its arguments, or each line of
the standard input when no argument is given.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runEval,
	}
	rootCmd.Version = version + " (commit=" + commit + ", built=" + date + ")"
	rootCmd.SetVersionTemplate("meval version {{.Version}}\n")
	rootCmd.PersistentFlags().Bool("strict", false, "Fail on unclosed parentheses")

	rootCmd.AddCommand(newRPNCmd(), newOperatorsCmd(), newServeCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func runEval(cmd *cobra.Command, args []string) error {
	strict, _ := cmd.Flags().GetBool("strict")
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		res, err := meval.Evaluate(strings.Join(args, " "), meval.Strict(strict))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res)
		return nil
	}

	// Lines are read whole, whatever their length.
	failed := false
	r := bufio.NewReader(cmd.InOrStdin())
	for {
		line, readErr := r.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			res, err := meval.Evaluate(line, meval.Strict(strict))
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				failed = true
			} else {
				fmt.Fprintln(out, res)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("reading input: %w", readErr)
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

func newRPNCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rpn expression...",
		Short: "Print an expression in Reverse Polish notation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strict, _ := cmd.Flags().GetBool("strict")
			e, err := meval.Compile(strings.Join(args, " "), meval.Strict(strict))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e)
			return nil
		},
	}
}

type operatorEntry struct {
	Symbol        string `yaml:"symbol"`
	Arity         int    `yaml:"arity"`
	Precedence    int    `yaml:"precedence"`
	Associativity string `yaml:"associativity"`
	Kind          string `yaml:"kind"`
}

type operatorTable struct {
	Operators []operatorEntry    `yaml:"operators"`
	Constants map[string]float64 `yaml:"constants"`
}

func newOperatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operators",
		Short: "List the operators, functions and constants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asYAML, _ := cmd.Flags().GetBool("yaml")
			return printOperators(cmd.OutOrStdout(), asYAML)
		},
	}
	cmd.Flags().Bool("yaml", false, "Print the table as YAML")
	return cmd
}

func printOperators(w io.Writer, asYAML bool) error {
	var table operatorTable
	for _, op := range meval.Operators() {
		table.Operators = append(table.Operators, operatorEntry{
			Symbol:        op.Symbol,
			Arity:         op.Arity,
			Precedence:    op.Precedence,
			Associativity: op.Assoc.String(),
			Kind:          op.Kind.String(),
		})
	}
	table.Constants = meval.Constants()

	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(table); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, op := range table.Operators {
		fmt.Fprintf(w, "%-7s %-8s arity=%d precedence=%d %s\n",
			op.Symbol, op.Kind, op.Arity, op.Precedence, op.Associativity)
	}
	for _, name := range []string{"E", "PI"} {
		fmt.Fprintf(w, "%-7s constant %s\n", name, meval.FormatNumber(table.Constants[name]))
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve expression evaluation over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("config", "", "YAML configuration file (env MEVAL_CONFIG)")
	cmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env MEVAL_HOST)")
	cmd.Flags().Int("port", 0, "HTTP server port (default 8787, env MEVAL_PORT)")
	return cmd
}

func serveConfig(cmd *cobra.Command) (config.Config, error) {
	path := os.Getenv("MEVAL_CONFIG")
	if v, _ := cmd.Flags().GetString("config"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("host"); v != "" {
		cfg.Host = v
	}
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		cfg.Port = v
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict, _ = cmd.Flags().GetBool("strict")
	}
	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := serveConfig(cmd)
	if err != nil {
		return err
	}
	server := api.New(cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down meval server...")
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("meval listening on %s (strict=%t)", cfg.Addr(), cfg.Strict)
	return server.Listen()
}
