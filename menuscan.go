// Package menuscan extracts structured menu items from heterogeneous
// restaurant menu sources - static HTML, JS-rendered pages, text PDFs,
// scanned PDFs, and raw images - and normalizes them into a single item
// schema regardless of source format.
//
// This package contains domain types, the error taxonomy, and the pure
// parsing/normalization logic following Ben Johnson's Standard Package
// Layout. Implementations live in subdirectories named after their
// primary dependency (e.g., goquery/, pdf/, gemini/, sqlite/).
package menuscan
