// Package normalisers provides implementations of the Normaliser interface
// for the document formats the assistant can learn from. Each normaliser
// turns raw bytes of one MIME family into a sectioned Document.
//
// Registry selects a normaliser by MIME type and priority; RegisterDefaults
// installs the built-in PDF, Markdown and plain text normalisers.
package normalisers
