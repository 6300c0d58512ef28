package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/a3tai/harvest-report/internal/pdf"
)

// InspectionResult is the outcome for one file
type InspectionResult struct {
	FilePath  string   `json:"file_path"`
	Success   bool     `json:"success"`
	Pages     int      `json:"pages,omitempty"`
	Size      int64    `json:"size,omitempty"`
	PageTexts []string `json:"page_texts,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type options struct {
	format    string
	pages     int
	list      string
	showHelp  bool
	showTexts bool
}

func main() {
	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdout, os.Stderr))
}

// run executes the command and returns the exit code
func run(args []string, fs afero.Fs, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("harvest-inspect", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	flags.StringVar(&opts.format, "format", "text", "Output format: text, json")
	flags.IntVar(&opts.pages, "pages", pdf.ReportPages, "Expected page count (0 accepts any)")
	flags.StringVar(&opts.list, "list", "", "List the reports in a directory instead of inspecting files")
	flags.BoolVar(&opts.showTexts, "text", true, "Print the text of every page")
	flags.BoolVar(&opts.showHelp, "help", false, "Show help message")

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if opts.showHelp {
		printHelp(stdout, flags)
		return 0
	}
	if opts.format != "text" && opts.format != "json" {
		fmt.Fprintf(stderr, "Error: unknown format %q\n", opts.format)
		return 2
	}

	if opts.list != "" {
		return listReports(fs, opts, stdout, stderr)
	}

	if flags.NArg() == 0 {
		fmt.Fprintf(stderr, "Error: PDF file path required\n\n")
		printUsage(stderr)
		return 1
	}

	results := make([]InspectionResult, 0, flags.NArg())
	failed := false
	for _, path := range flags.Args() {
		res := inspectFile(fs, path, opts.pages)
		if !res.Success {
			failed = true
		}
		if !opts.showTexts {
			res.PageTexts = nil
		}
		results = append(results, res)
	}

	if err := outputResults(stdout, opts.format, results); err != nil {
		fmt.Fprintf(stderr, "Error outputting results: %v\n", err)
		return 1
	}
	if failed {
		return 1
	}
	return 0
}

// inspectFile reads path and checks it parses with the expected page count
func inspectFile(fs afero.Fs, path string, wantPages int) InspectionResult {
	res := InspectionResult{FilePath: path}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	info, err := pdf.Inspect(data)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Pages = info.Pages
	res.Size = info.Size
	res.PageTexts = info.PageTexts

	if wantPages > 0 && info.Pages != wantPages {
		res.Error = fmt.Sprintf("%v: got %d, want %d", pdf.ErrPageCountMismatch, info.Pages, wantPages)
		return res
	}
	res.Success = true
	return res
}

func listReports(fs afero.Fs, opts options, stdout, stderr io.Writer) int {
	files, err := pdf.ListReports(fs, opts.list)
	if err != nil {
		fmt.Fprintf(stderr, "Error listing %s: %v\n", opts.list, err)
		return 1
	}

	if opts.format == "json" {
		if err := writeJSON(stdout, files); err != nil {
			fmt.Fprintf(stderr, "Error outputting results: %v\n", err)
			return 1
		}
		return 0
	}

	if len(files) == 0 {
		fmt.Fprintf(stdout, "No reports found in %s\n", opts.list)
		return 0
	}
	fmt.Fprintf(stdout, "Found %d report(s) in %s:\n", len(files), opts.list)
	for _, f := range files {
		fmt.Fprintf(stdout, "  %s  %8d bytes  %s\n", f.ModifiedTime, f.Size, f.Name)
	}
	return 0
}

func outputResults(w io.Writer, format string, results []InspectionResult) error {
	if format == "json" {
		return writeJSON(w, results)
	}
	return outputText(w, results)
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputText(w io.Writer, results []InspectionResult) error {
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "File: %s\n", filepath.Base(res.FilePath))
		if !res.Success {
			fmt.Fprintf(w, "Status: ✗ %s\n", res.Error)
			if res.Pages == 0 {
				continue
			}
		} else {
			fmt.Fprintf(w, "Status: ✓ valid\n")
		}
		fmt.Fprintf(w, "Pages: %d\n", res.Pages)
		fmt.Fprintf(w, "Size: %d bytes\n", res.Size)
		for n, text := range res.PageTexts {
			fmt.Fprintf(w, "\n--- Page %d ---\n%s\n", n+1, text)
		}
	}
	return nil
}

func printHelp(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "Harvest Inspect - Check and read back harvest report PDFs")
	fmt.Fprintln(w)
	printUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPTIONS:")
	flags.SetOutput(w)
	flags.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "EXAMPLES:")
	fmt.Fprintln(w, "  harvest-inspect harvest_Juan_Perez_2024-05-01_10-30-00.pdf")
	fmt.Fprintln(w, "  harvest-inspect --format json --text=false ~/Documents/harvest-report/Reports/*.pdf")
	fmt.Fprintln(w, "  harvest-inspect --list ~/Documents/harvest-report/Reports")
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  harvest-inspect [OPTIONS] <pdf_file>...")
	fmt.Fprintln(w, "  harvest-inspect --list <directory>")
}
