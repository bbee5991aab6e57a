// Package assets loads the decorative images drawn on reports.
//
// A report header carries three logos. They are fetched once per report,
// concurrently, under a timeout; a slot that cannot be loaded is left blank
// and the report proceeds. Every loaded image is decoded (PNG, JPEG, GIF,
// BMP, TIFF or WebP), downscaled to a bounded edge and re-encoded as 8-bit
// PNG, so the PDF engine only ever sees input it can embed.
//
// Sources are local paths or http(s) URLs:
//
//	l := assets.NewLoader(assets.WithTimeout(3*time.Second))
//	logos := l.LoadAll(ctx, []string{"logos/ir.png", "", "https://cdn.example/rdso.webp"})
//	// logos[1] == nil: empty slot
package assets
