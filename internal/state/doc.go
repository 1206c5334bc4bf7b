// Package state tracks the loading lifecycle of the data behind a view.
//
// A view that fetches from the API is in exactly one of three phases:
//
//	Loading -> Ready   (value present, possibly empty)
//	        -> Failed  (error present, no value)
//
// Every Begin hands out a Token and a cancellable context. The Bubble Tea
// command that performs the request carries the token back in its result
// message, and Resolve ignores results whose token is no longer current. A
// view that is left calls Cancel, so a late response can neither overwrite
// another view's data nor keep a request running.
//
// Load is not safe for concurrent use. It lives inside the UI model, which
// Bubble Tea only touches from its update loop; commands never see it.
package state
