// Package dataprocessing turns chromatogram exports into traces and
// integrates baseline-corrected peak areas over them.
//
// # Architecture
//
// The package has two components:
//
// 1. Parser: reads a two-row-header CSV export into a domain.Trace
// 2. Integrator: resolves window endpoints to samples and integrates the
// signal above the straight baseline joining them
//
// # Usage
//
//	trace, err := dataprocessing.ParseFile("data/run1/sample01.CSV")
//	if err != nil {
//	    return err
//	}
//	result, err := dataprocessing.Integrate(trace, domain.PeakWindow{Name: "p1", Start: 1.2, End: 1.9})
//
// Both components return AppErrors from internal/errors wrapping the
// sentinels of pkg/contracts/domain, so callers can use errors.Is.
package dataprocessing
