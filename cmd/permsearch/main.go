// Command permsearch runs simulated annealing and randomized neighborhood
// search on TSP instances and reports per-run and aggregate results.
package main

func main() {
	Execute()
}
