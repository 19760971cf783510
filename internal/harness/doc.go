// Package harness provides conformance testing for the list engine.
//
// The harness loads YAML scenarios, replays their steps against a real
// list engine backed by an in-memory SQLite store, and validates the
// resulting order and rank invariants.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	list: groceries
//	max_key_len: 8
//	setup:
//	  - op: append
//	    task: A
//	steps:
//	  - op: insert_after
//	    task: B
//	    after: A
//	  - op: move_after
//	    task: A
//	    after: B
//	  - op: remove
//	    task: B
//	    expect_error: UNKNOWN_TASK
//	assertions:
//	  - type: order
//	    order: [A]
//	  - type: unique_ranks
//
// Setup steps must succeed; a setup failure aborts the run. Main steps
// either succeed or, when expect_error names an error code, must fail
// with exactly that code.
//
// # Step Operations
//
//   - append: insert task at the end of the list
//   - insert_after: insert task after the anchor (empty after = front)
//   - move_after: move task after the anchor (empty after = front)
//   - remove: delete task
//   - reload: re-read the list from the store
//   - rebalance: reassign evenly spaced ranks to every task
//
// # Assertion Types
//
//   - order: the final task ID order matches exactly
//   - unique_ranks: in-memory ranks are strictly increasing, and the
//     store holds the same tasks with the same ranks
//   - rebalance_count: the engine performed exactly N rebalances
//
// # Deterministic Testing
//
// Rank assignment is a pure function of the existing order, and each
// scenario runs against a fresh in-memory database, so replaying a
// scenario produces byte-identical traces for golden file comparison.
//
// # Usage
//
// Load a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/nested_insert.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Execute it:
//
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
