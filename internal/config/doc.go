// Package config provides configuration loading for gcpeaks.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. The YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern GCPEAKS_<SECTION>_<KEY>:
//
//	GCPEAKS_ANALYSIS_ROOT=/data/gc
//	GCPEAKS_ANALYSIS_NAME=example_data
//	GCPEAKS_ANALYSIS_INTERVAL=0.5
//	GCPEAKS_LOGGING_LEVEL=debug
//	GCPEAKS_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/gcpeaks.prom
//
// Peak windows and axis ranges are structured and come from YAML only.
//
// # File Format
//
//	analysis:
//	  root: /data/gc
//	  name: example_data
//	  peaks:
//	    Peak1: [2.4, 2.8]
//	    Peak2: [3.9, 4.1]
//	    Peak3: [4.8, 5.1]
//	  y_axis: [-1000, 200000]
//	  interval: 0.5
//	output:
//	  workbook: true
//
// # Paths
//
// NewPaths derives every output location from the analysis section:
//
//	paths := config.NewPaths(cfg.Analysis)
//	paths.GetPlotPath("run01.CSV") // <root>/<name>/results/run01.png
//	paths.SummaryCSV               // <root>/<name>/results/Peak areas <name>.csv
package config
