// Package app wires configuration, logging and telemetry to the grading
// pipelines.
//
// Every command is an independent entry point with its own run id and root
// span:
//
//	RunChart  roster -> Aggregate -> chart workbook
//	RunStats  roster -> Describe  -> statistics text (and optional CSV)
//	RunRank   roster -> Aggregate -> ranking table (and optional CSV)
//
// The pipelines never share intermediate results. Errors are logged once,
// here, and returned to the caller unchanged.
package app
