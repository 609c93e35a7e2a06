// ABOUTME: Entry point for the mobitec record keeper
// ABOUTME: Routes to CLI commands, the TUI, or the MCP server based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/harperreed/mobitec/cli"
	"github.com/harperreed/mobitec/store"
	"github.com/harperreed/mobitec/sync"
	"github.com/harperreed/mobitec/tui"
)

const version = "0.1.0"

func main() {
	// Optional .env for uplink settings; absence is fine
	_ = godotenv.Load()

	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dataPath := flag.String("data-path", "", "Record store path (default: ~/.local/share/mobitec/records)")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("mobitec version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	s, closeStore := openStore(*dataPath)
	defer closeStore()

	switch command {
	case "mcp":
		if err := cli.MCPCommand(s); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "tui":
		reconciler, journal := openReconciler(s)
		if journal != nil {
			defer func() { _ = journal.Close() }()
		}
		if err := tui.Run(s, reconciler, journal); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "records":
		if len(commandArgs) == 0 {
			fmt.Println("Error: records requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		runRecordsCommand(s, commandArgs[0], commandArgs[1:])

	case "history":
		if err := cli.HistoryCommand(s, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "sync":
		if len(commandArgs) == 0 {
			fmt.Println("Error: sync requires a subcommand (now, status, watch)")
			printUsage()
			os.Exit(1)
		}
		runSyncCommand(s, commandArgs[0], commandArgs[1:])

	case "auth":
		if len(commandArgs) == 0 {
			fmt.Println("Error: auth requires a subcommand (register, login, logout, whoami)")
			printUsage()
			os.Exit(1)
		}
		runAuthCommand(s, commandArgs[0], commandArgs[1:])

	case "notify":
		if len(commandArgs) == 0 {
			fmt.Println("Error: notify requires a subcommand (message, summary)")
			printUsage()
			os.Exit(1)
		}
		runNotifyCommand(s, commandArgs[0], commandArgs[1:])

	case "school":
		if err := cli.SchoolCommand(s, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runRecordsCommand(s *store.Store, sub string, args []string) {
	var err error
	switch sub {
	case "add-delivery":
		err = cli.AddDeliveryCommand(s, args)
	case "add-collection":
		err = cli.AddCollectionCommand(s, args)
	case "add-visit":
		err = cli.AddVisitCommand(s, args)
	case "add-shipment":
		err = cli.AddShipmentCommand(s, args)
	case "list":
		err = cli.ListRecordsCommand(s, args)
	case "delete":
		err = cli.DeleteRecordCommand(s, args)
	default:
		fmt.Printf("Unknown records command: %s\n\n", sub)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runSyncCommand(s *store.Store, sub string, args []string) {
	var err error
	switch sub {
	case "now":
		err = cli.SyncNowCommand(s, args)
	case "status":
		err = cli.SyncStatusCommand(s, args)
	case "watch":
		err = cli.SyncWatchCommand(s, args)
	default:
		fmt.Printf("Unknown sync command: %s\n\n", sub)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runAuthCommand(s *store.Store, sub string, args []string) {
	var err error
	switch sub {
	case "register":
		err = cli.RegisterCommand(s, args)
	case "login":
		err = cli.LoginCommand(s, args)
	case "logout":
		err = cli.LogoutCommand(s, args)
	case "whoami":
		err = cli.WhoamiCommand(s, args)
	default:
		fmt.Printf("Unknown auth command: %s\n\n", sub)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runNotifyCommand(s *store.Store, sub string, args []string) {
	var err error
	switch sub {
	case "message":
		err = cli.MessageCommand(s, args)
	case "summary":
		err = cli.SummaryCommand(s, args)
	default:
		fmt.Printf("Unknown notify command: %s\n\n", sub)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func openStore(dataPath string) (*store.Store, func()) {
	if dataPath == "" {
		dataPath = store.DefaultPath()
	}
	kv, err := store.OpenKV(dataPath)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	return store.NewStore(kv), func() { _ = kv.Close() }
}

func openReconciler(s *store.Store) (*sync.Reconciler, *sync.Journal) {
	cfg, err := sync.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load uplink config: %v", err)
	}
	journal, err := sync.OpenJournal(sync.DefaultJournalPath())
	if err != nil {
		log.Printf("warning: sync journal unavailable: %v", err)
		journal = nil
	}
	return sync.NewReconciler(s, cfg.NewUplink(), journal), journal
}

func printUsage() {
	fmt.Println(`mobitec - offline-first record keeper for school logistics

Usage:
  mobitec [flags] <command> [subcommand] [options]

Flags:
  --version           Show version and exit
  --data-path PATH    Record store path

Commands:
  tui                 Interactive terminal interface
  mcp                 Start MCP server on stdio

  records add-delivery    --school --item --responsible --role --phone [options]
  records add-collection  --school --item --responsible --role --phone [options]
  records add-visit       --school --address [--inep]
  records add-shipment    --school --item --sender --method [options]
  records list            [--type] [--pending]
  records delete          --type --id

  history             Merged record feed [--type] [--limit]

  sync now            Run one sync pass [--timeout]
  sync status         Per-category sync state
  sync watch          Reconcile whenever connectivity returns [--interval]

  auth register       --name --email
  auth login          [--email]
  auth logout
  auth whoami

  notify message      --type --id
  notify summary      --type --id
  school              --inep CODE | --suggest PREFIX

Environment:
  MOBITEC_SERVER, MOBITEC_TOKEN, MOBITEC_GENERATOR_URL, MOBITEC_SCHOOL_DIR_URL
  (a .env file in the working directory is loaded when present)`)
}
