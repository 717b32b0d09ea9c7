package config

import "gcpeaks/pkg/contracts"

// Application constants
const (
	AppName    = "gcpeaks"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment override, e.g. GCPEAKS_ANALYSIS_ROOT
	EnvPrefix = "GCPEAKS"

	// Raw data and output naming
	DefaultExtension  = ".CSV"
	DefaultResultsDir = "results"
	SummaryPrefix     = "Peak areas "
	SummaryCSVExt     = ".csv"
	SummaryXLSXExt    = ".xlsx"
	SummarySheet      = "Peak areas"
	PlotExt           = ".png"

	// Raw export layout: two header rows, time in field 1, signal in field 2
	HeaderRows  = 2
	TimeField   = 1
	SignalField = 2

	// Plot size in pixels (a 20x6 inch figure at 100 dpi)
	PlotWidth  = 2000
	PlotHeight = 600

	// Log defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/gcpeaks.log"
)

// DefaultConfigLocations are searched in order when no -config flag is given
var DefaultConfigLocations = []string{
	"gcpeaks.yaml",
	"configs/gcpeaks.yaml",
}
