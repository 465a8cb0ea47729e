package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/config"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/logging"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/options"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/server"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/pkg/soilsensor"
)

var (
	rootCmd = &cobra.Command{
		Use:   "soil-decode [payload]",
		Short: "Decode soil moisture sensor uplinks",
		Long:  "soil-decode decodes HARDWARIO soil moisture sensor LoRaWAN uplinks.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := analyzeOptions()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				return runInteractive(ctx, opts, cmd.InOrStdin(), out)
			}
			return runAnalyze(ctx, opts, args[0], out)
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the decoder as an HTTP webhook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	port       uint8
	convention string
	encoding   string
	variables  string
	configPath string
)

func init() {
	rootCmd.Flags().Uint8Var(&port, "port", 0, "LoRaWAN FPort the uplink was received on")
	rootCmd.Flags().StringVar(&convention, "convention", soilsensor.ConventionDecodeUplink,
		fmt.Sprintf("codec convention (%s)", strings.Join(soilsensor.Conventions(), ", ")))
	rootCmd.Flags().StringVar(&encoding, "encoding", options.EncodingHex, "payload text encoding (hex or base64)")
	rootCmd.Flags().StringVar(&variables, "var", "", "device variables as key=value[,key=value]")
	serveCmd.Flags().StringVar(&configPath, "config", "", "path to YAML configuration file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.Fatal(err)
	}
}

func analyzeOptions() (soilsensor.AnalyzeOptions, error) {
	vars, err := options.ParseVariables(variables)
	if err != nil {
		return soilsensor.AnalyzeOptions{}, err
	}
	return soilsensor.AnalyzeOptions{
		Convention: convention,
		Port:       port,
		Encoding:   encoding,
		Variables:  vars,
	}, nil
}

func runInteractive(ctx context.Context, opts soilsensor.AnalyzeOptions, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	logrus.Info("soil-decode analyze mode. Paste a payload and press Enter (Ctrl+D to exit).")
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runAnalyze(ctx, opts, line, out); err != nil {
			logrus.WithError(err).Error("failed to decode payload")
		}
	}
	return scanner.Err()
}

func runAnalyze(ctx context.Context, opts soilsensor.AnalyzeOptions, payload string, out io.Writer) error {
	result, err := soilsensor.AnalyzeHexWithOptions(ctx, payload, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result.String())
	return nil
}

func runServe(ctx context.Context, path string) error {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	log, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return server.New(&cfg, logging.NewLogger(log, "server"), reg).Run(ctx)
}
