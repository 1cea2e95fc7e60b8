// Package cardfolio provides the engine behind a trading-card collection
// tracker. It is local-first: the catalog is a static snapshot, and the
// user's collection lives in small key-value blobs next to it.
//
// The core functionalities include:
//   - Catalog Model: a flat, read-only view of every card variant of a
//     catalog snapshot, merged with the user's own custom cards.
//   - Rarity Classification: raw rarity labels mapped to a fixed, ordered
//     set of display buckets.
//   - Filtering: search, set selection and bucket selection over the
//     catalog, with deduplication of identical listings and code ordering.
//   - Identity Healing: re-binding the identifiers of a saved collection to
//     the identifiers of a regenerated catalog, without losing quantities.
//   - Valuation: conversion of source-currency prices into the display
//     currency, always rounding up, and portfolio level totals.
//
// A Session ties these together for a single user and persists every
// mutation through a Store.
//
// This package serves as the foundational logic for the `cfo` command-line
// tool.
package cardfolio
