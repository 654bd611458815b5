// Package framework provides the generic test-harness infrastructure used by the
// contract test suite: a test execution context with nested subtests, result
// accumulation, regex-based test filtering, and pluggable test output loggers.
//
// Nothing in this package knows anything about the service under test; the
// domain-specific pieces live in the apiservice and qatests packages.
package framework
