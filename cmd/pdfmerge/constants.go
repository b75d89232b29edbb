package main

const CLIName = "pdfmerge"

// Flag names - long form
const (
	FlagOutput     = "output"
	FlagConfig     = "config"
	FlagEngine     = "engine"
	FlagValidation = "validation"
	FlagRecovery   = "recovery"
	FlagPassword   = "password"
	FlagOptimize   = "optimize"
	FlagVerbose    = "verbose"
)

// Flag names - short form
const (
	FlagOutputShort  = "o"
	FlagVerboseShort = "v"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
)

// Output formats
const (
	SummaryFormat = "Merged %d file(s) into: %s\n"
	ErrorFormat   = "Error: %s\n"
)

const (
	UsageLine  = CLIName + " [flags] <input.pdf>... -o <output.pdf>"
	ShortUsage = "Merge multiple PDF files into one."
	LongUsage  = `Merge multiple PDF files into one.

Inputs are merged in the order given. Every input must exist and carry a
.pdf extension; the first one that does not aborts the merge before anything
is written. Missing parent directories of the output are created, and an
existing output file is replaced.

On success a summary line is printed to stdout. Failures are reported on
stderr as a single "Error: ..." line, including the install hint when no
PDF engine is linked into the binary.`
	ExampleUsage = `  pdfmerge cover.pdf body.pdf appendix.pdf -o out/report.pdf
  pdfmerge --validation strict --recovery lenient scans/*.pdf -o scans.pdf
  pdfmerge --config pdfmerge.yaml a.pdf b.pdf -o ab.pdf`
)

// Flag help
const (
	HelpOutput     = "Output PDF file path"
	HelpConfig     = "YAML config file; explicitly set flags take precedence"
	HelpEngine     = "PDF engine to merge with"
	HelpValidation = "Input parsing mode: strict or relaxed"
	HelpRecovery   = "On a rejected input: strict aborts, lenient retries it once in relaxed mode"
	HelpPassword   = "Password to open encrypted inputs"
	HelpOptimize   = "Optimize the merged document"
	HelpVerbose    = "Log debug details to stderr"
)
