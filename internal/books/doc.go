// Package books is the HTTP client for the reading list REST API.
//
// # Overview
//
// The API is an external collaborator; this package only knows its wire
// format. Five calls are exposed through the Service interface:
//
//	List    GET    /v1/books        -> {"books": [Book...]}
//	Get     GET    /v1/books/{id}   -> {"book": Book}
//	Create  POST   /v1/books        -> {"book": Book}
//	Update  PUT    /v1/books/{id}   -> {"book": Book}
//	Delete  DELETE /v1/books/{id}   -> {"message": "..."}
//
// There are no retries, no caching and no auth headers. Each request carries a
// fresh X-Request-ID so a failing call can be matched with the server's logs.
//
// # Errors
//
// List, Create and Delete propagate transport and status errors unchanged.
// Get and Update collapse every failure into ErrFetchBook and ErrUpdateBook
// respectively and log the cause, because the UI shows a fixed message for
// them. A List payload whose books member is not an array yields
// ErrMalformedList. Non-2xx responses are *StatusError.
//
// # Partial updates
//
// Updates are expressed as a Patch over the closed Field set. NewPatch checks
// the value type against the field kind, so a request body is always a single
// well-typed key such as {"pages": 412}.
package books
