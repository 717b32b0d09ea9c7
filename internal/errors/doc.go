// Package errors provides the application error taxonomy.
//
// Every failure that reaches the command boundary is an *AppError carrying a
// type (PARSING, VALIDATION, NOT_FOUND, STORAGE, CONFIG, RENDER, ANALYSIS),
// a message, the underlying cause and free-form context such as the file
// name or the peak window. The domain sentinels in pkg/contracts/domain stay
// reachable through Unwrap:
//
//	var appErr *errors.AppError
//	if stderrors.As(err, &appErr) {
//	    logger.Error("batch failed", appErr.LogAttrs()...)
//	}
//	if stderrors.Is(err, domain.ErrEndpointNotFound) {
//	    // a window lies outside the trace
//	}
package errors
