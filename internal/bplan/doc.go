// Package bplan ingests the BPLAN LOC and NWK tab-delimited text files into
// an internal/topology LocationStore and LinkStore.
//
// Only the LOC and NWK record types are parsed — BPLAN's ancillary files
// (TLD, TLK, PLT, CIF schedule records, ELR/LOR/SMART/NAPTAN reference
// data) are out of scope for the planner and are not touched here.
//
// Malformed lines (fewer fields than the expected schema) are silently
// skipped, matching the reference implementation's tolerance of BPLAN
// extract quirks. A missing LOC or NWK file is a fatal, distinguished
// error (*MissingFileError).
package bplan
