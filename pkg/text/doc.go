// Package text provides width-aware word wrapping for report layout.
//
// [Wrap] splits text into lines that fit a maximum width at a given font
// size. Width is delegated to a [Measurer] so the same algorithm works with
// exact font metrics (the PDF engine) and with the [Approx] heuristic used
// for terminal previews and tests.
//
// Breaks only happen at whitespace. A single token wider than the limit is
// kept whole on its own line; callers accept the overflow rather than see an
// identifier or URL split mid-word.
package text
