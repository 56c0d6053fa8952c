// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Retrieval Interfaces
//
//   - Normaliser / NormaliserRegistry: Turn raw bytes into a sectioned Document
//   - PostProcessor / PostProcessorPipeline: Cut a Document into Chunks
//   - EmbeddingService: Encode text into fixed-dimension vectors
//   - VectorIndex: Exact top-k similarity search over chunk vectors
//   - IndexStore: Persist built indexes between runs (optional)
//   - LLMService: Produce answer text from a grounded prompt
//
// # Supporting Interfaces
//
//   - ConfigStore: Application configuration
//   - PromptStore: Customisable prompt templates
//   - QuoteStore / TipStore: Wellness content
//   - Speaker: Text-to-speech output (optional)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
