package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/workstrip/internal/i3"
)

func runOutputs(args []string) int {
	fs := flag.NewFlagSet("outputs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/workstrip/config.yaml)")
	asJSON := fs.Bool("json", false, "Print outputs as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: workstrip outputs [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List i3 outputs. The NAME column is what watch expects as its")
		fmt.Fprintln(os.Stderr, "output argument.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "outputs takes no arguments")
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

	outputs, err := client.Outputs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		data, err := json.MarshalIndent(outputs, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	fmt.Printf("%-20s %-7s %-8s %s\n", "NAME", "ACTIVE", "PRIMARY", "WORKSPACE")
	for _, out := range outputs {
		fmt.Printf("%-20s %-7v %-8v %s\n", out.Name, out.Active, out.Primary, out.CurrentWorkspace)
	}
	return 0
}
