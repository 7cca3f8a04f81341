package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/config"
	mcpserver "github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/mcp"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/report"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/scan"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/util"
)

const version = "0.1.0-dev"

// defaultConfigFile is looked up relative to the working directory when
// --config is not given.
const defaultConfigFile = ".dsscan.yaml"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logger := util.NewLogger(util.DefaultLoggerConfig())
	util.SetDefault(logger)

	command := os.Args[1]
	switch command {
	case "scan":
		os.Exit(runScan(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "serve":
		os.Exit(runServe(os.Args[2:]))
	case "version":
		fmt.Printf("dsscan %s\n", version)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runScan(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	incremental := fs.Bool("incremental", false, "analyze only files changed since the last commit")
	configPath := fs.String("config", defaultConfigFile, "path to scan configuration file")
	fs.Parse(args)

	root := fs.Arg(0)
	if root == "" {
		fmt.Fprintln(os.Stderr, "usage: dsscan scan [--incremental] [--config path] <root>")
		return 1
	}

	cfg := config.Load(*configPath, nil)
	runner := scan.NewRunner(cfg, nil)
	defer runner.Close()

	rep, err := runner.Scan(root, *incremental)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		return 1
	}
	return printReport(rep)
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigFile, "path to scan configuration file")
	fs.Parse(args)

	root := fs.Arg(0)
	if root == "" {
		fmt.Fprintln(os.Stderr, "usage: dsscan watch [--config path] <root>")
		return 1
	}

	cfg := config.Load(*configPath, nil)
	runner := scan.NewRunner(cfg, nil)
	defer runner.Close()

	watcher, err := scan.NewWatcher(runner, root, func(rep *report.Report) {
		printReport(rep)
	}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "watch failed: %v\n", err)
		return 1
	}
	if err := watcher.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "watch failed: %v\n", err)
		return 1
	}
	defer watcher.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	return 0
}

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigFile, "path to scan configuration file")
	fs.Parse(args)

	root := fs.Arg(0)
	if root == "" {
		fmt.Fprintln(os.Stderr, "usage: dsscan serve [--config path] <root>")
		return 1
	}

	cfg := config.Load(*configPath, nil)
	runner := scan.NewRunner(cfg, nil)
	defer runner.Close()

	srv := mcpserver.NewServer(runner, root, nil)
	if err := srv.ServeStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return 1
	}
	return 0
}

func printReport(rep *report.Report) int {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode report: %v\n", err)
		return 1
	}
	fmt.Println(string(data))
	return 0
}

func printUsage() {
	fmt.Println("Usage: dsscan <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  scan       Scan a repository and print the adoption report")
	fmt.Println("  watch      Re-scan on file changes and print fresh reports")
	fmt.Println("  serve      Start MCP server exposing scan tools")
	fmt.Println("  version    Print version")
	fmt.Println("  help       Show this help message")
}
