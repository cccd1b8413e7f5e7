// Package feedback defines the observation data model shared by the
// classifier, the store, and the reporting engine.
//
// An Observation is one tester-reported issue about the TTS product,
// permanently tagged with a category (text vs tts) at creation. The log is
// append-only; observations are never recomputed or mutated after insert.
package feedback
