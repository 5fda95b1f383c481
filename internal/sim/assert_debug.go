//go:build flappydebug

package sim

const debugAssertions = true
