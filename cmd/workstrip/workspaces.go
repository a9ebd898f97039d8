package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/workstrip/internal/i3"
	"github.com/1broseidon/workstrip/internal/strip"
)

func runWorkspaces(args []string) int {
	fs := flag.NewFlagSet("workspaces", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/workstrip/config.yaml)")
	asJSON := fs.Bool("json", false, "Print workspaces as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: workstrip workspaces [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List i3 workspaces with the state the strip would render them in.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "workspaces takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	client, err := i3.Connect(cfg.SocketPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer client.Close()

	workspaces, err := client.Workspaces()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		data, err := json.MarshalIndent(workspaces, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	fmt.Printf("%-5s %-24s %-16s %s\n", "NUM", "NAME", "OUTPUT", "STATE")
	for _, ws := range workspaces {
		fmt.Printf("%-5d %-24s %-16s %s\n", ws.Num, ws.Name, ws.Output, strip.VisibilityOf(ws))
	}
	return 0
}
