// Package pipeline runs report generation as a fixed sequence of steps:
// read the input file, extract tokens, enrich them through the feed, build
// the report rows, write the report file and record the run.
//
// Each step receives the shared *model.Run and fills in its part. The
// pipeline turns the outcome into a model.Result: input problems fail with
// ReasonInput, interruption with ReasonCanceled and everything else with
// ReasonUnexpected. Enrichment failures never fail a run; the enrich step
// stores them on the Run and the Result carries them as a warning.
//
// Design decision: a pipeline of small steps instead of one function, so
// the CLI can run a prefix of it (load runs read and extract only) and
// tests can swap the feed for a stub.
package pipeline
