/*
Package view declares the top-level views of personachat, the paths selecting them,
and the handlers rendering them.

Every view renders as HTML inside the base layout,
or, for requests accepting application/json, as a [State] document
a client shell re-renders from without reloading the page.
*/
package view
