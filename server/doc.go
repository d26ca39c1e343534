// Package server is the HTTP front end of the catalogue.
//
// Routes:
//
//	GET  /api/health     liveness and the size of the preloaded catalogue
//	POST /api/requests   input document in, list of responses out
//	POST /api/map.svg    input document in, rendered map out
//	POST /api/stat       list of stat requests against the preloaded catalogue
//	GET  /api/map.svg    map of the preloaded catalogue
//
// Every response carries an X-Request-ID header, echoed from the request or
// generated.
package server
