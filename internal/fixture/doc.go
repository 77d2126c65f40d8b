// Package fixture provides the canonical fixture record and the
// normalization logic around it: parsing Spanish date/time phrases into
// timezone-aware kickoffs, classifying competition labels against per-subject
// allow-lists, and merging fixture batches from multiple sources into a
// deduplicated, chronologically sorted list. Each fixture carries a
// deterministic SHA1-based identifier derived from its identity key, so
// calendar UIDs stay stable across runs.
package fixture
