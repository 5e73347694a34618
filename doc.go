// Package stockledger keeps the trade history of an individual investor and
// derives, from that history alone, the current positions and the realized
// profit and loss of every ticker.
//
// The ledger is an ordered list of immutable Trade records. Nothing else is
// stored: positions and gains are recomputed from the full list on every
// query, replaying trades in insertion order.
//
// Costs follow the average cost basis method. A buy moves the average price
// of the held units; a sell realizes the difference between its price and that
// average, minus its fee, and leaves the average untouched.
//
// This package serves as the foundational logic for the `stl` command-line
// tool. Persistence lives in the store package.
package stockledger
