// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides a buffered slog handler for asserting on
// log records and fixture writers for chromatogram exports.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    dir := testutil.WriteTraceFolder(t, "run1", testutil.PeakTrace(), "a.CSV", "b.CSV")
//	    ...
//	    testutil.AssertNoErrors(t, handler)
//	}
package shared
