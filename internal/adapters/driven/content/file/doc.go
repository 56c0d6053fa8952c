// Package file loads mood content from local files.
//
// Quotes come from a plain text file with one quote per line. Relaxation
// tips come from a JSON or YAML mapping of mood name to a list of tips.
package file
