// Command staticdash publishes a YAML-described dashboard site.
package main

import (
	"fmt"
	"os"

	"github.com/staticdash/staticdash"
	"github.com/staticdash/staticdash/cmd/staticdash/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "build":
		err = commands.BuildCommand(args)
	case "version":
		fmt.Printf("staticdash version %s\n", staticdash.Version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("staticdash - static dashboard site generator")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  staticdash build [--config=site.yaml] [--out=output] [--pdf=report.pdf]")
	fmt.Println("  staticdash version               Show version")
	fmt.Println("  staticdash help                  Show this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  staticdash build                          # site.yaml -> ./output")
	fmt.Println("  staticdash build --config=docs/site.yaml  # custom config location")
	fmt.Println("  staticdash build --pdf=report.pdf         # also emit a PDF report")
}
