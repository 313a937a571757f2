// Package config provides configuration structures and utilities for
// backlinkreport. It defines the enrichment feed endpoint and credentials,
// where reports are written and in which format, how input files are decoded,
// and where the run ledger lives.
//
// Values come from three layers applied in order: built-in defaults
// (NewConfig), the optional YAML file (.backlinkreport), and CLI flags.
package config
