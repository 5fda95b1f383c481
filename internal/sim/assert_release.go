//go:build !flappydebug

package sim

const debugAssertions = false
