package commands

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/staticdash/staticdash/internal/config"
)

// BuildCommand implements the build command: load the site config, publish
// the HTML site, and optionally emit a PDF report.
func BuildCommand(args []string) error {
	configPath := "site.yaml"
	outDir := "output"
	pdfPath := ""

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--config" || arg == "-c" {
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		} else if val, ok := strings.CutPrefix(arg, "--config="); ok {
			configPath = val
		} else if arg == "--out" || arg == "-o" {
			if i+1 < len(args) {
				outDir = args[i+1]
				i++
			}
		} else if val, ok := strings.CutPrefix(arg, "--out="); ok {
			outDir = val
		} else if arg == "--pdf" {
			if i+1 < len(args) {
				pdfPath = args[i+1]
				i++
			}
		} else if val, ok := strings.CutPrefix(arg, "--pdf="); ok {
			pdfPath = val
		} else {
			return fmt.Errorf("unknown argument %q\n\nUsage: staticdash build [--config=site.yaml] [--out=output] [--pdf=report.pdf]", arg)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	dash, err := cfg.Build(filepath.Dir(configPath))
	if err != nil {
		return err
	}

	if err := dash.Publish(outDir); err != nil {
		return err
	}
	log.Printf("published site to %s", outDir)

	if pdfPath != "" {
		if err := dash.PublishPDF(pdfPath, cfg.PDFOptions()); err != nil {
			return err
		}
		log.Printf("published pdf to %s", pdfPath)
	}
	return nil
}
