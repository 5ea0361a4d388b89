// Package permsearch is a toolkit for metaheuristic search over permutation
// tours: the cyclic orderings of n cities found in TSP-like problems.
//
// What is inside?
//
//	distance/  - distance models (explicit matrix, rounded Euclidean) and instance loading
//	tour/      - the Candidate under optimization and permutation utilities
//	move/      - swap, insert and reverse operators with O(1)/O(k) exact deltas
//	objective/ - the evaluation oracle: FE budget, time limit, best-so-far, metrics
//	anneal/    - simulated annealing with a geometric cooling schedule
//	rns/       - randomized neighborhood search (best / first / random improvement)
//	bench/     - repeated seeded runs with robust summary statistics and CSV output
//	config/    - YAML run files decoded onto defaults
//	rng/       - seeded random helpers shared by every engine
//
// Engines never evaluate full tours on their own: they compute move deltas,
// keep the candidate cost in sync by adding them, and ask the oracle for a
// full evaluation only when it counts against the budget.
//
// Quick example:
//
//	m, _ := distance.NewEuclidean(pts, distance.RoundNearest)
//	o, _ := objective.New(m, objective.WithMaxFEs(100000), objective.WithSeed(7))
//	a, _ := anneal.New(anneal.DefaultConfig())
//	res, _ := a.Run(o)
//	fmt.Println(res.Final.Cost, res.Stop)
//
// The permsearch command (cmd/permsearch) exposes the same engines on the
// command line: permsearch anneal -i instances/octagon.yaml --runs 10.
package permsearch
