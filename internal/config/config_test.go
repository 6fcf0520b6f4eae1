package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staticdash/staticdash"
	"github.com/staticdash/staticdash/pkg/figure"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "site.yaml", `
title: Ops Dashboard
width: 1100
marking: INTERNAL
pdf:
  title: Ops Report
  author: Ops Team
  title_page: true
  toc: true
pages:
  - slug: overview
    title: Overview
  - slug: raw
    marking: ""
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Ops Dashboard", cfg.Title)
	assert.Equal(t, 1100, cfg.Width)
	assert.Equal(t, "INTERNAL", cfg.Marking)
	require.NotNil(t, cfg.PDF)
	assert.True(t, cfg.PDF.TitlePage)
	assert.True(t, cfg.PDF.TOC)

	require.Len(t, cfg.Pages, 2)
	assert.Nil(t, cfg.Pages[0].Marking, "omitted marking stays nil")
	require.NotNil(t, cfg.Pages[1].Marking, "explicit empty marking is set")
	assert.Equal(t, "", *cfg.Pages[1].Marking)
}

func TestLoadDefaultsTitle(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "site.yaml", "pages:\n  - slug: p\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Dashboard", cfg.Title)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "site.yaml", "title: [unclosed\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestBuildAssemblesDashboard(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "overview.md", "# Welcome\n\nintro text")
	writeFile(t, dir, "data.csv", "name,count\nalpha,3\nbeta,7\n")
	writeFile(t, dir, "report.csv", "r\n1\n")

	cfg := &Config{
		Title: "Site",
		Width: 1200,
		Pages: []PageSpec{
			{
				Slug:      "overview",
				Title:     "Overview",
				Source:    "overview.md",
				Tables:    []TableSpec{{CSV: "data.csv"}},
				Downloads: []DownloadSpec{{Path: "report.csv", Label: "Raw data"}},
				Children: []PageSpec{
					{Slug: "details"},
				},
			},
		},
	}

	d, err := cfg.Build(dir)
	require.NoError(t, err)
	assert.Equal(t, "Site", d.Title)
	assert.Equal(t, 1200, d.PageWidth)

	pages := d.Pages()
	require.Len(t, pages, 1)
	p := pages[0]
	assert.Equal(t, "overview", p.Slug)

	// Auto title header, then source text, table, and download in order.
	blocks := p.Blocks()
	require.Len(t, blocks, 4)
	_, ok := blocks[0].(*staticdash.HeaderBlock)
	assert.True(t, ok)

	text, ok := blocks[1].(*staticdash.TextBlock)
	require.True(t, ok)
	assert.Contains(t, text.Markdown, "intro text")

	table, ok := blocks[2].(*staticdash.TableBlock)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "count"}, table.Data.Columns())
	assert.Equal(t, [][]string{{"alpha", "3"}, {"beta", "7"}}, table.Data.Rows())

	dl, ok := blocks[3].(*staticdash.DownloadBlock)
	require.True(t, ok)
	assert.Equal(t, "Raw data", dl.Label)

	// Untitled child falls back to its slug.
	subs := p.Subpages()
	require.Len(t, subs, 1)
	assert.Equal(t, "details", subs[0].Title)
}

func TestBuildRejectsMissingSlug(t *testing.T) {
	cfg := &Config{Pages: []PageSpec{{Title: "No Slug"}}}
	_, err := cfg.Build(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no slug")
}

func TestBuildMissingSource(t *testing.T) {
	cfg := &Config{Pages: []PageSpec{{Slug: "p", Source: "gone.md"}}}
	_, err := cfg.Build(t.TempDir())
	require.Error(t, err)
}

func TestBuildMissingDownload(t *testing.T) {
	cfg := &Config{Pages: []PageSpec{{
		Slug:      "p",
		Downloads: []DownloadSpec{{Path: "gone.bin"}},
	}}}
	_, err := cfg.Build(t.TempDir())
	var notFound *staticdash.FileNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestBuildMarkingTriState(t *testing.T) {
	dir := t.TempDir()
	empty := ""
	override := "PAGE ONLY"
	cfg := &Config{
		Title:   "Site",
		Marking: "SITE WIDE",
		Pages: []PageSpec{
			{Slug: "inherits"},
			{Slug: "overrides", Marking: &override},
			{Slug: "suppresses", Marking: &empty},
		},
	}

	d, err := cfg.Build(dir)
	require.NoError(t, err)

	out := t.TempDir()
	require.NoError(t, d.Publish(out))

	read := func(slug string) string {
		data, err := os.ReadFile(filepath.Join(out, "pages", slug+".html"))
		require.NoError(t, err)
		return string(data)
	}

	assert.Contains(t, read("inherits"), "SITE WIDE")
	page := read("overrides")
	assert.Contains(t, page, "PAGE ONLY")
	assert.NotContains(t, page, "SITE WIDE")
	assert.NotContains(t, read("suppresses"), "marking-banner")
}

func TestLoadCSVTableErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadCSVTable(filepath.Join(dir, "absent.csv"))
	require.Error(t, err)

	empty := writeFile(t, dir, "empty.csv", "")
	_, err = loadCSVTable(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")

	headerOnly := writeFile(t, dir, "header.csv", "a,b\n")
	tbl, err := loadCSVTable(headerOnly)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	assert.Empty(t, tbl.Rows())
}

func TestBuildChartsFromCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "series.csv", "p50,p99\n1,4\n2,6\n3,5\n")
	writeFile(t, dir, "counts.csv", "host,errors\nweb-1,12\nweb-2,3\n")

	cfg := &Config{
		Title: "Site",
		Pages: []PageSpec{{
			Slug: "charts",
			Charts: []ChartSpec{
				{CSV: "series.csv", Title: "Latency"},
				{CSV: "counts.csv", Title: "Errors", Type: "bar"},
			},
		}},
	}

	d, err := cfg.Build(dir)
	require.NoError(t, err)

	blocks := d.Pages()[0].Blocks()
	require.Len(t, blocks, 3) // auto title header plus two plots

	line, ok := blocks[1].(*staticdash.PlotBlock)
	require.True(t, ok)
	lineChart, ok := line.Figure.(*figure.LineChart)
	require.True(t, ok)
	assert.Equal(t, "Latency", lineChart.Title)

	bar, ok := blocks[2].(*staticdash.PlotBlock)
	require.True(t, ok)
	barChart, ok := bar.Figure.(*figure.BarChart)
	require.True(t, ok)
	_, err = barChart.RenderPNG()
	assert.NoError(t, err)
}

func TestBuildChartErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "text.csv", "a,b\nx,y\n")
	writeFile(t, dir, "ok.csv", "a,b\n1,2\n")

	cases := []struct {
		name string
		spec ChartSpec
	}{
		{"non-numeric values", ChartSpec{CSV: "text.csv"}},
		{"unknown type", ChartSpec{CSV: "ok.csv", Type: "pie"}},
		{"missing file", ChartSpec{CSV: "gone.csv"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{Pages: []PageSpec{{Slug: "p", Charts: []ChartSpec{tc.spec}}}}
			_, err := cfg.Build(dir)
			require.Error(t, err)
		})
	}
}

func TestPDFOptionsFallback(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, staticdash.PDFOptions{}, cfg.PDFOptions())

	cfg.PDF = &PDFConfig{Title: "T", Author: "A"}
	opts := cfg.PDFOptions()
	assert.Equal(t, "T", opts.Title)
	assert.Equal(t, "A", opts.Author)
}
