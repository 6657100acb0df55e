package logging

import (
	"strings"
	"testing"

	"go.viam.com/test"
)

func verifySetLevels(registry *Registry, expectedMatches map[string]string) bool {
	for name, level := range expectedMatches {
		logger, ok := registry.LoggerNamed(name)
		if !ok || !strings.EqualFold(level, logger.GetLevel().String()) {
			return false
		}
	}
	return true
}

func createTestRegistry(loggerNames []string) *Registry {
	registry := NewRegistry()
	for _, name := range loggerNames {
		registry.GetOrRegister(name, NewBlankLogger(name))
	}
	return registry
}

func TestValidatePattern(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		pattern string
		isValid bool
	}{
		{"motion.cli", true},
		{"motion.cli.*", true},
		{"motion.*.planner", true},
		{"*.planner", true},
		{"*", true},

		{"motion..cli", false},
		{"motion.cli.", false},
		{".motion.cli", false},
		{"motion.cli.**", false},
		{"_.motion", false},
		{"motion.-", false},
	} {
		t.Run(tc.pattern, func(t *testing.T) {
			t.Parallel()
			test.That(t, validatePattern(tc.pattern), test.ShouldEqual, tc.isValid)
		})
	}
}

func TestUpdateConfig(t *testing.T) {
	logger := NewTestLogger(t)
	registry := createTestRegistry([]string{"motion.cli", "motion.cli.merge", "motion.planner"})

	err := registry.UpdateConfig([]LoggerPatternConfig{
		{Pattern: "motion.cli.*", Level: "debug"},
		{Pattern: "motion.planner", Level: "WARN"},
	}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, verifySetLevels(registry, map[string]string{
		"motion.cli":       "Info",
		"motion.cli.merge": "Debug",
		"motion.planner":   "Warn",
	}), test.ShouldBeTrue)

	// Loggers registered after the config inherit matching levels.
	late := registry.GetOrRegister("motion.cli.evaluate", NewBlankLogger("motion.cli.evaluate"))
	test.That(t, late.GetLevel(), test.ShouldEqual, DEBUG)

	// Re-registering returns the winner.
	again := registry.GetOrRegister("motion.cli.evaluate", NewBlankLogger("other"))
	test.That(t, again, test.ShouldEqual, late)

	err = registry.UpdateConfig([]LoggerPatternConfig{{Pattern: "motion.*", Level: "bogus"}}, logger)
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, registry.RegisteredLoggerNames(), test.ShouldResemble,
		[]string{"motion.cli", "motion.cli.evaluate", "motion.cli.merge", "motion.planner"})

	// A failed update keeps the previous levels.
	test.That(t, verifySetLevels(registry, map[string]string{"motion.planner": "Warn"}), test.ShouldBeTrue)
}

func TestLastMatchingPatternWins(t *testing.T) {
	registry := createTestRegistry([]string{"motion.planner", "motion.cli"})
	err := registry.UpdateConfig([]LoggerPatternConfig{
		{Pattern: "motion.*", Level: "debug"},
		{Pattern: "*.planner", Level: "error"},
	}, NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, verifySetLevels(registry, map[string]string{
		"motion.cli":     "Debug",
		"motion.planner": "Error",
	}), test.ShouldBeTrue)

	err = registry.UpdateConfig(nil, NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, verifySetLevels(registry, map[string]string{
		"motion.cli":     "Info",
		"motion.planner": "Info",
	}), test.ShouldBeTrue)
}

func TestInvalidPatternIsSkipped(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	registry := createTestRegistry([]string{"motion.cli"})

	err := registry.UpdateConfig([]LoggerPatternConfig{{Pattern: "motion..cli", Level: "debug"}}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs.FilterMessage("failed to validate a pattern").Len(), test.ShouldEqual, 1)
	test.That(t, verifySetLevels(registry, map[string]string{"motion.cli": "Info"}), test.ShouldBeTrue)
}
