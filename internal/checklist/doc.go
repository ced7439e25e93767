// Package checklist defines what a valid Desktop Badminton Game project tree
// looks like and how each part of it is verified.
//
// A checklist is a sequence of Routines. Each Routine names a Verification
// kind and the ArtifactSpec / ConfigMarker records it inspects; Evaluate
// interprets any Routine against a probe.Probe and returns a CheckResult
// whose items carry a three-valued Outcome:
//   - Success: the artifact or marker is present
//   - Warning: present but suspicious (an undersized asset)
//   - Failure: missing, unreadable, or a heuristic did not hold
//
// Reduce is the routine-level rule: any Failure fails the routine, Warnings
// never do.
//
//	p := probe.New(".")
//	for _, r := range checklist.DefaultRoutines() {
//	    res := checklist.Evaluate(p, r)
//	    fmt.Println(res.Title, res.Passed)
//	}
package checklist
