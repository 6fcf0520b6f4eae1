// Package config loads a declarative site description from YAML and
// assembles the dashboard it describes. This is what the CLI drives; library
// callers typically build their dashboards in code instead.
package config

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/staticdash/staticdash"
	"github.com/staticdash/staticdash/pkg/figure"
)

// Config is the root of a site.yaml file.
type Config struct {
	Title        string     `yaml:"title"`
	Width        int        `yaml:"width"`
	Marking      string     `yaml:"marking"`
	Distribution string     `yaml:"distribution"`
	PDF          *PDFConfig `yaml:"pdf,omitempty"`
	Pages        []PageSpec `yaml:"pages"`
}

// PDFConfig carries the front-matter options for PDF output.
type PDFConfig struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Affiliation string `yaml:"affiliation"`
	Date        string `yaml:"date"`
	TitlePage   bool   `yaml:"title_page"`
	TOC         bool   `yaml:"toc"`
}

// PageSpec describes one page. Source is a markdown file appended as a text
// block; tables and downloads follow it in order. Marking is tri-state: omit
// to inherit, set to text to override, set to the empty string to suppress.
type PageSpec struct {
	Slug      string         `yaml:"slug"`
	Title     string         `yaml:"title"`
	Width     int            `yaml:"width"`
	Marking   *string        `yaml:"marking,omitempty"`
	Source    string         `yaml:"source"`
	Tables    []TableSpec    `yaml:"tables,omitempty"`
	Charts    []ChartSpec    `yaml:"charts,omitempty"`
	Downloads []DownloadSpec `yaml:"downloads,omitempty"`
	Children  []PageSpec     `yaml:"children,omitempty"`
}

// TableSpec loads tabular data from a CSV file; the first record is the
// header row.
type TableSpec struct {
	CSV string `yaml:"csv"`
}

// ChartSpec renders CSV data as a raster chart. For line charts every column
// after the first record's header becomes a series; for bar charts the first
// column holds labels and the second the values.
type ChartSpec struct {
	CSV   string `yaml:"csv"`
	Title string `yaml:"title"`
	Type  string `yaml:"type"` // "line" (default) or "bar"
}

// DownloadSpec stages a file for download.
type DownloadSpec struct {
	Path  string `yaml:"path"`
	Label string `yaml:"label"`
}

// Load reads and parses a site.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Title == "" {
		cfg.Title = "Dashboard"
	}
	return &cfg, nil
}

// Build assembles the described dashboard. Relative source paths resolve
// against baseDir, normally the config file's directory.
func (c *Config) Build(baseDir string) (*staticdash.Dashboard, error) {
	d := staticdash.NewDashboard(c.Title)
	if c.Width > 0 {
		d.PageWidth = c.Width
	}
	d.Marking = c.Marking
	d.Distribution = c.Distribution

	for _, spec := range c.Pages {
		p, err := buildPage(spec, baseDir)
		if err != nil {
			return nil, err
		}
		d.AddPage(p)
	}
	return d, nil
}

// PDFOptions converts the pdf section, falling back to zero options when the
// section is absent.
func (c *Config) PDFOptions() staticdash.PDFOptions {
	if c.PDF == nil {
		return staticdash.PDFOptions{}
	}
	return staticdash.PDFOptions{
		Title:       c.PDF.Title,
		Author:      c.PDF.Author,
		Affiliation: c.PDF.Affiliation,
		Date:        c.PDF.Date,
		TitlePage:   c.PDF.TitlePage,
		TOC:         c.PDF.TOC,
	}
}

func buildPage(spec PageSpec, baseDir string) (*staticdash.Page, error) {
	if spec.Slug == "" {
		return nil, fmt.Errorf("page %q has no slug", spec.Title)
	}
	title := spec.Title
	if title == "" {
		title = spec.Slug
	}

	p := staticdash.NewPage(spec.Slug, title)
	if spec.Width > 0 {
		p.SetWidth(spec.Width)
	}
	if spec.Marking != nil {
		if *spec.Marking == "" {
			p.ClearMarking()
		} else {
			p.SetMarking(*spec.Marking)
		}
	}

	if spec.Source != "" {
		md, err := os.ReadFile(resolve(baseDir, spec.Source))
		if err != nil {
			return nil, fmt.Errorf("page %s: read source: %w", spec.Slug, err)
		}
		p.AddText(string(md))
	}

	for _, ts := range spec.Tables {
		table, err := loadCSVTable(resolve(baseDir, ts.CSV))
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", spec.Slug, err)
		}
		p.AddTable(table)
	}

	for _, cs := range spec.Charts {
		fig, err := loadCSVChart(resolve(baseDir, cs.CSV), cs)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", spec.Slug, err)
		}
		p.AddPlot(fig)
	}

	for _, ds := range spec.Downloads {
		if err := p.AddDownload(resolve(baseDir, ds.Path), ds.Label); err != nil {
			return nil, fmt.Errorf("page %s: %w", spec.Slug, err)
		}
	}

	for _, childSpec := range spec.Children {
		child, err := buildPage(childSpec, baseDir)
		if err != nil {
			return nil, err
		}
		p.AddSubpage(child)
	}
	return p, nil
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

func readCSVRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s is empty", filepath.Base(path))
	}
	return records, nil
}

// loadCSVTable reads a CSV file into a table; the first record is the header.
func loadCSVTable(path string) (staticdash.Table, error) {
	records, err := readCSVRecords(path)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]any, len(rec))
		for i, cell := range rec {
			row[i] = cell
		}
		rows = append(rows, row)
	}
	return staticdash.NewTable(records[0], rows), nil
}

// loadCSVChart reads a CSV file into a line or bar chart.
func loadCSVChart(path string, spec ChartSpec) (staticdash.Figure, error) {
	records, err := readCSVRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv %s has no data rows", filepath.Base(path))
	}
	header, rows := records[0], records[1:]

	switch spec.Type {
	case "", "line":
		chart := figure.NewLineChart(spec.Title)
		for col := 0; col < len(header); col++ {
			values := make([]float64, 0, len(rows))
			for _, rec := range rows {
				if col >= len(rec) {
					continue
				}
				v, err := strconv.ParseFloat(rec[col], 64)
				if err != nil {
					return nil, fmt.Errorf("csv %s, column %q: %w", filepath.Base(path), header[col], err)
				}
				values = append(values, v)
			}
			chart.AddSeries(header[col], values)
		}
		return chart, nil

	case "bar":
		if len(header) < 2 {
			return nil, fmt.Errorf("csv %s: bar charts need a label and a value column", filepath.Base(path))
		}
		chart := figure.NewBarChart(spec.Title)
		for _, rec := range rows {
			if len(rec) < 2 {
				continue
			}
			v, err := strconv.ParseFloat(rec[1], 64)
			if err != nil {
				return nil, fmt.Errorf("csv %s, label %q: %w", filepath.Base(path), rec[0], err)
			}
			chart.AddBar(rec[0], v)
		}
		return chart, nil

	default:
		return nil, fmt.Errorf("unknown chart type %q", spec.Type)
	}
}
