// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The answering core is split the same way the work flows:
// Ingestor turns a file into chunks, Pipeline embeds and indexes them
// once, and Generator turns retrieved passages into an answer.
package services
