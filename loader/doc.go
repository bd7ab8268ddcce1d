// Package loader holds the registry of format loaders and decides which
// parser handles a file.
//
// A Descriptor exposes a safe capability, a dangerous capability, or both.
// Which one runs is decided per call by the registry's trust table:
//
//   - dangerous, when the descriptor has one and its trust flag is on;
//   - otherwise safe, when the descriptor has one;
//   - otherwise the call fails with errs.KindDisabledLoader.
//
// Files without a type header are autodetected: the loaders of the auto
// order are attempted in turn and the first one that returns without error
// wins. Every failed attempt is kept and reported in the aggregated
// errs.KindAutodetectExhausted error.
package loader
