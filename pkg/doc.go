// Package pkg holds the railreport libraries.
//
// # Overview
//
// railreport renders one railway track-fitting material record as a
// paginated PDF. The packages fall into three groups:
//
//  1. Domain: [material] (record model and section table), [text] (line
//     wrapping), [report] (page layout and composition)
//  2. Infrastructure: [store] (MongoDB, directory, memory), [assets] (logo
//     loading), [cache], [httputil], [config], [observability], [errors]
//  3. Delivery: [pipeline] (lookup, logos, render), [server] (HTTP download),
//     [session] (caller identity)
//
// # Data flow
//
//	store.Get ──► material.Record ─┐
//	assets.LoadAll ──► logos ──────┼─► report.Composer ──► PDF bytes
//	session ──► generated-by line ─┘
//
// [pipeline.Runner] performs these steps for both the CLI and the server.
package pkg
