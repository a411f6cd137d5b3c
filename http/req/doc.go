/*
Package req provides ergonomics for handling an HTTP request.

Package req parses payloads encoded in query parameters into a pointer to a struct.
That struct ought to leverage the appropriate struct tags for performing two tasks.
First, matching keys in the payload to fields on the struct with "schema" tags.
Second, validating the payload's data meets requirements with "validate" tags.

The parade of errors that may propagate from such a task
are translated to personachat sentinel errors or [ValidationErrors],
so handlers can respond to a bad request the same way whatever went wrong.
*/
package req
