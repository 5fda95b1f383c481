package sim

// precondition reports whether ok holds. Builds tagged flappydebug panic on a
// violation instead, so misuse surfaces in tests while release builds skip
// the offending step.
func precondition(ok bool, what string) bool {
	if !ok && debugAssertions {
		panic("sim: " + what)
	}
	return ok
}
