// Package material defines the track-fitting material record consumed by the
// report renderer.
//
// # Overview
//
// A [Record] describes one physical track fitting (elastic rail clip, liner,
// rubber pad, sleeper insert...) as it moves through its lifecycle:
//
//	manufacture → depot entry → installation → fault detection → verification → approval
//
// Every field is optional. Records come from a document database where the
// shape is loose, so decoding tolerates missing keys and ignores unknown
// ones. Consumers must never assume a field is present.
//
// # Sections
//
// [Sections] returns the fixed, ordered table of report sections and their
// label/value rows. Both the PDF composer and the CLI "show" command render
// from this table so the two views cannot drift apart.
//
// # File Formats
//
// [Load] and [Decode] read records from JSON, YAML or TOML:
//
//	rec, err := material.Load("clip.yaml")
//
// The keys match the portal's document field names (materialId,
// fittingType, failureCount, ...) in every format.
package material
