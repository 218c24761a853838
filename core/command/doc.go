// Package command implements the two-phase issue/confirm protocol for
// asynchronous remote vehicle commands.
//
// The voice assistant allows only 8-10 seconds of total round trip, so the
// protocol is a single issue call followed by a single confirm call, never a
// retry loop. Every outcome, including partial success, terminates in a spoken
// message string rather than an error.
//
// Key pieces:
//   - Runner.RunWithConfirmation: issue a command, verify the acceptance
//     predicate, poll once and classify the confirmation.
//   - Runner.Freshen: the cloud-freshen specialization that forces the
//     provider to pull current telemetry before a read, returning the raw
//     confirmation payload instead of a message.
//   - Aggregate: runs independent fact checks concurrently and joins their
//     fragments, so total latency is bounded by the slowest check.
package command
