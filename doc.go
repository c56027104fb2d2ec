// Package jsontools repairs almost-JSON text and turns JSON documents into
// tables.
//
// jsontools accepts the kind of input people paste from logs, config files
// and Python consoles: comments, single quotes, trailing commas, bare keys,
// None/True/False and NaN/Infinity. It repairs the text with a fixed sequence
// of small rewrites, reports which ones were needed, and decodes the result
// into ordered values.
//
// # Features
//
//   - Repair JSON-like text and report the applied steps
//   - Line and column diagnostics for text that cannot be repaired
//   - Record inference, flattening with a configurable separator and column typing
//   - Export to CSV, TSV, LTSV, Parquet and Excel (XLSX), optionally compressed
//   - Store tables in SQLite, PostgreSQL, MySQL, SQL Server or MongoDB
//   - Pick records with a jq expression before tabulating
//   - Re-emit documents as indented JSON, YAML or TOML
//
// # Basic Usage
//
//	res, err := jsontools.Repair(text, jsontools.RepairOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Report) // e.g. "normalize_quotes, quote_keys"
//
//	csv, err := jsontools.ToDelimitedText(res.Value, ".", jsontools.OutputFormatCSV)
//
// # Advanced Usage
//
// For files and directories, use the Builder pattern:
//
//	builder, err := jsontools.NewBuilder().
//	    AddPath("exports/").
//	    WithSelect(".data.items").
//	    Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	docs, err := builder.Load(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	w, err := sink.Open(ctx, sink.Config{Kind: "sqlite", DSN: "out.db"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	_, err = jsontools.StoreDocuments(ctx, w, docs, jsontools.CollisionReplace)
//
// # Records and Columns
//
// A top-level array is a list of records. An object with an array member
// uses the first such member. Anything else becomes a single record. Nested
// values are flattened into paths such as "customer.address.city" or
// "items.0.sku"; columns are the sorted union of those paths and are typed
// INTEGER, REAL or TEXT from the values they hold.
//
// # Table Naming
//
// Table names are derived from file paths:
//   - "orders.json" becomes table "orders"
//   - "daily sales.json.gz" becomes table "daily_sales"
package jsontools
