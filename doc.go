// Package lvlmc is your in-memory toolkit for exact probabilistic
// reachability on discrete-time Markov chains, built around sparse
// state elimination.
//
// 🚀 What is lvlmc?
//
//	A modern, generics-first model-checking library that brings together:
//		• Core primitives: sparse transition matrices, labeled models, rewards
//		• Pluggable arithmetic: tolerant float64 or exact big.Rat, same code path
//		• Qualitative analysis: prob-0/prob-1 partitions without arithmetic
//		• State elimination: self-loop rescaling & sorted merge-join relinking
//		• Ordering heuristics: forward/backward BFS ranks or seeded shuffles
//		• Hybrid reduction: bounded SCC decomposition with entry-state queues
//		• Queries: until & eventually probabilities, expected rewards,
//		  conditional probabilities
//
// ✨ Why choose lvlmc?
//
//   - Exact by construction – elimination is Gaussian, not iterative
//   - Deterministic – every random choice is seeded, every run repeatable
//   - Pure Go – no cgo, no solver binaries, no hidden deps
//   - Extensible – progress hooks (OnEliminated) for custom instrumentation
//
// Under the hood, everything is organized under six subpackages:
//
//	algebra/   — the closed arithmetic interface + float64 & big.Rat instances
//	dtmc/      — sparse matrices, builders, and the labeled model type
//	flexgraph/ — the mutable row-list graph the eliminator rewrites in place
//	reach/     — BFS distances, constrained reachability, prob-0/1 partitions
//	scc/       — Tarjan decomposition restricted to a state subset
//	elim/      — the eliminator, ordering heuristics, and the query checker
//
// Quick example, the classic branching gadget:
//
//	b := dtmc.NewBuilder[float64](3, algebra.DefaultFloat64())
//	_ = b.Add(0, 1, 0.5) // initial splits in half
//	_ = b.Add(0, 2, 0.5)
//	_ = b.Add(1, 1, 1.0) // absorbing target
//	_ = b.Add(2, 2, 1.0) // absorbing trap
//	init := bitset.New(3)
//	init.Set(0)
//	model := dtmc.NewModel(b.Build(), init)
//
//	checker, _ := elim.NewChecker(model, algebra.DefaultFloat64())
//	target := bitset.New(3)
//	target.Set(1)
//	res, _ := checker.EventuallyProbability(target) // res.Value == 0.5
//
// Start with dtmc to describe your chain, then hand it to elim.
package lvlmc
