package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	restclient "github.com/restlane/rest-client-go"
)

var (
	cfgPath  string
	baseURL  string
	method   string
	data     string
	headers  []string
	params   []string
	timeout  time.Duration
	retries  int
	insecure bool
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "restcall <endpoint>",
	Short: "Issue a single JSON REST request and print the response",
	Long: `restcall issues one request against a REST API and prints the parsed
JSON response. Connection defaults come from a YAML config file and
RESTCALL_* environment variables; flags override both.`,
	Args:          cobra.ExactArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "base URL of the API")
	rootCmd.Flags().StringVarP(&method, "request", "X", "GET", "HTTP method")
	rootCmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	rootCmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "request header 'Name: value' (repeatable)")
	rootCmd.Flags().StringArrayVar(&params, "param", nil, "query parameter key=value (repeatable)")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-attempt request timeout")
	rootCmd.Flags().IntVar(&retries, "retries", 3, "retries on 5xx responses")
	rootCmd.Flags().BoolVarP(&insecure, "insecure", "k", false, "skip TLS certificate verification")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log requests and retries to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "restcall:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	var opts []restclient.Option
	if verbose {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		opts = append(opts, restclient.WithRequestLogger(restclient.NewZerologLogger(log)))
	}

	client, err := restclient.NewFromConfig(cfg, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	var body any
	if data != "" {
		if err := json.Unmarshal([]byte(data), &body); err != nil {
			return fmt.Errorf("--data is not valid JSON: %w", err)
		}
	}

	req := &restclient.Request{
		Method:   method,
		Endpoint: args[0],
		Body:     body,
		Params:   parseParams(params),
		Headers:  parseHeaders(headers),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := client.Do(ctx, req)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func buildConfig(cmd *cobra.Command) (*restclient.Config, error) {
	cfg := restclient.DefaultConfig()
	if cfgPath != "" {
		loaded, err := restclient.LoadConfig(cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = timeout
	}
	if cmd.Flags().Changed("retries") {
		cfg.Retry.Count = retries
	}
	if insecure {
		cfg.VerifySSL = false
	}

	return cfg, nil
}

func parseParams(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		if key = strings.TrimSpace(key); key != "" {
			out[key] = value
		}
	}
	return out
}

func parseHeaders(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		if name = strings.TrimSpace(name); name != "" {
			out[name] = strings.TrimSpace(value)
		}
	}
	return out
}
