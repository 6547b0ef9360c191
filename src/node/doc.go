// Package node implements the scheduler of a citizen node.
//
// This is the part of citizen that drives a roster of personas against the
// gateway for the duration of a run. Node implements a state machine where the
// states are Running and Terminating.
//
// Scheduling
//
// The scheduler is deliberately single-threaded. It repeats roster cycles: one
// pass over the personas in fixed order, applying to each of them the behavior
// policy of its archetype. Publishing personas publish papers, first
// unconditionally to fill a bootstrap quota, then with a small per-cycle
// probability. Validating personas process the gateway's mempool with a
// per-cycle probability, scoring each pending paper and submitting a verdict.
// Social personas post engagement messages. Pacing delays separate persona
// actions and roster cycles because the shared gateway is rate-sensitive.
//
// The persona at index 0 of the roster is the beacon. Once per 5-minute
// elapsed-time slot, it emits a heartbeat message announcing the node's
// presence. Heartbeat frequency is a function of elapsed time, not of cycle
// count, so shortening the cycle delay does not flood the chat.
//
// Every network operation is best-effort. Failures are logged and the
// operation is simply skipped for the current cycle; the next cycle retries
// naturally. The node never crashes because the gateway is down.
//
// Termination
//
// The node terminates when the configured run duration has elapsed, when it
// receives SIGINT or SIGTERM, or when Shutdown is called. All exits go through
// the same path, which logs a final summary of the run.
package node
