/*
Package dal is the data access layer between a host application and the
database of inflected Pāli word forms.

A Service runs batches of SQL statements against a QueryExecutor and returns
one Table per statement. Statements are executed one at a time, in order,
because the underlying store accepts single statements only. Optionally,
every cell of the results is rendered in a display script by a
Transliterator.

The executor and the transliterator are chosen once, when the Service is
created. A Service without a transliterator still executes plain batches;
only the transliterating entry point reports ErrConversionUnavailable.

A Service does no locking. The executor is expected to serialize access to
its store.
*/
package dal

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'pali.dal'
func tracer() tracing.Trace {
	return tracing.Select("pali.dal")
}
