// Package meta holds the metadata model of a generation pass: typed marker
// options, per-annotation extraction results, the property merger and the
// immutable generation unit handed to renderers.
//
// Extraction never aborts a pass. Every annotation yields a Result that is
// either a decoded Settings record or the reason it could not be decoded;
// failures are written to the pass Trace and otherwise ignored.
package meta
