package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"planctl/internal/api"
	"planctl/internal/store"
)

const usageText = `planctl - terminal client for the planning server

Usage: planctl [flags] <command> [args]

Commands:
  boms                 interactive BOM list (filter, select, delete, import/export)
  tree <sku>           interactive BOM hierarchy for one product
  edit <sku>           edit the existing BOM of <sku>
  new                  create a new BOM
  items                item list with status quick-edit
  forecast <file.xlsx> upload a sales forecast workbook
  watch                follow the server change feed
  widgets              arrange the locally saved dashboard layout

Flags:
`

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to config file")
	server := flag.String("server", "", "Planning server base URL (overrides config)")
	stateDB := flag.String("state-db", "", "Local UI state database path (overrides config)")
	openAll := flag.Bool("open-all", false, "Tree view: start with every level expanded")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *server != "" {
		cfg.ServerURL = *server
	}
	if *stateDB != "" {
		cfg.StateDB = *stateDB
	}
	if cfg.StateDB == "" {
		cfg.StateDB = defaultStateDBPath()
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StateDB), 0o755); err != nil {
		log.Fatalf("state dir: %v", err)
	}
	st, err := store.Open(cfg.StateDB)
	if err != nil {
		log.Fatalf("local state: %v", err)
	}
	defer st.Close()

	client := api.New(cfg.ServerURL, cfg.Token, cfg.Timeout())

	app := &App{
		client:  client,
		store:   st,
		in:      os.Stdin,
		out:     os.Stdout,
		openAll: *openAll,
	}

	switch cmd := flag.Arg(0); cmd {
	case "boms":
		err = app.runBOMs()
	case "tree":
		if flag.NArg() < 2 {
			log.Fatal("tree: missing sku")
		}
		err = app.runTree(flag.Arg(1))
	case "edit":
		if flag.NArg() < 2 {
			log.Fatal("edit: missing sku")
		}
		err = app.runEditor(flag.Arg(1))
	case "new":
		err = app.runEditor("")
	case "items":
		err = app.runItems()
	case "forecast":
		if flag.NArg() < 2 {
			log.Fatal("forecast: missing workbook path")
		}
		err = app.runForecastImport(flag.Arg(1))
	case "watch":
		err = app.runWatch()
	case "widgets":
		err = app.runWidgets()
	default:
		log.Fatalf("unknown command %q", cmd)
	}
	if err != nil {
		log.Fatal(err)
	}
}
