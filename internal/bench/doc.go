// Package bench is the keyed-rows benchmark application.
//
// A Store holds the rows and the selected id and implements the benchmark
// actions (run, runlots, add, update, clear, swaprows, remove, select).
// View describes the page: a jumbotron of action buttons above a table
// whose body is a keyed list, one row per item. Instance mounts the view
// into a document with its own runtime, and Runner times scenarios of
// actions against fresh instances.
package bench
