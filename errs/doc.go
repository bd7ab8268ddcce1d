// Package errs defines the failure kinds reported by conftree.
//
// Every failure surfaced by Get or Ensure is an *Error carrying one Kind.
// Callers branch on the kind either through the sentinels:
//
//	if errors.Is(err, errs.ErrDisabledLoader) {
//	    // enable the loader with Registry.SetDangerous
//	}
//
// or through KindOf:
//
//	switch errs.KindOf(err) {
//	case errs.KindPathNotFound, errs.KindNotIndexable:
//	    // the path does not address a value
//	}
//
// The wrapped cause (a format parser error, an I/O error, the aggregated
// autodetect attempts) stays reachable with errors.Unwrap / errors.As.
package errs
