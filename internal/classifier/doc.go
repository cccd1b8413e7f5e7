// Package classifier assigns a category (text vs tts) to observation drafts.
//
// Classification is a pure scoring heuristic over the draft's tags and issue
// description: canonical tags count double, keyword substring hits count
// single, and ties break asymmetrically (text wins only when a text tag is
// present, otherwise tts). It is total and deterministic; no draft, including
// the empty one, can fail to classify.
package classifier
