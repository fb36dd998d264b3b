// Package gridpath provides A* pathfinding over a bounded 2-D grid with
// 8-directional movement and an instrumented step log for replaying a
// search after the fact.
//
// It exposes three entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//   - SearchAll: run independent queries over one grid on a pool of workers.
//
// Orthogonal moves cost 10 and diagonal moves 14. A diagonal move is not
// allowed past the corner of a wall. The frontier policy is chosen per run
// with WithSelection: SelectFirst keeps the move-to-front list and its
// approximate lowest-score choice, SelectLowest always expands the true
// minimum.
package gridpath
