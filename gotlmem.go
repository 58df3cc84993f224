// Package gotlmem provides an AI-backed translation memory for structured
// web content.
//
// Gotlmem extracts translatable strings from page-builder JSON trees and
// product records, deduplicates them by content hash, translates pending
// strings in paced batches through an external completion provider, and
// serves a parallel localized site under a language-prefixed URL path.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/gotlmem"
//	    "github.com/ZaguanLabs/gotlmem/batch"
//	    "github.com/ZaguanLabs/gotlmem/provider"
//	    "github.com/ZaguanLabs/gotlmem/store"
//	)
//
//	func main() {
//	    db, _ := store.NewDB("./data/gotlmem.db")
//	    _ = store.Migrate(db)
//	    st := store.New(db)
//
//	    p := provider.NewClient(provider.ClientConfig{
//	        APIKey: os.Getenv("GOTLMEM_API_KEY"),
//	    })
//
//	    eng := batch.NewEngine(st, p, "es", batch.WithBatchLimit(10))
//	    res, _ := eng.RunBatch(context.Background())
//	    fmt.Printf("translated %d strings\n", res.Translated)
//	}
package gotlmem
