package logging

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// LoggerPatternConfig sets the level of every logger whose dotted name matches Pattern. A `*`
// section matches any run of characters, e.g. "motion.*" or "*.planner".
type LoggerPatternConfig struct {
	Pattern string `json:"pattern"`
	Level   string `json:"level"`
}

const (
	// e.g. "planner" or "motion-cli".
	loggerSection = `[a-zA-Z0-9]+([_-]*[a-zA-Z0-9]+)*`
	// a section or a wildcard.
	loggerSectionOrWildcard = `(` + loggerSection + `|\*)`
)

var loggerPatternRegexp = regexp.MustCompile(`^` + loggerSectionOrWildcard + `(\.` + loggerSectionOrWildcard + `)*$`)

func validatePattern(pattern string) bool {
	return loggerPatternRegexp.MatchString(pattern)
}

// patternToRegexp turns a validated pattern into an anchored regular expression.
func patternToRegexp(pattern string) *regexp.Regexp {
	quoted := strings.Split(pattern, "*")
	for i, part := range quoted {
		quoted[i] = regexp.QuoteMeta(part)
	}
	return regexp.MustCompile(`^` + strings.Join(quoted, `.*`) + `$`)
}

type levelRule struct {
	matcher *regexp.Regexp
	level   Level
}

// compileRules validates cfgs. Invalid patterns are reported on errorLogger and skipped; an unknown
// level is an error.
func compileRules(cfgs []LoggerPatternConfig, errorLogger Logger) ([]levelRule, error) {
	rules := make([]levelRule, 0, len(cfgs))
	for _, cfg := range cfgs {
		if !validatePattern(cfg.Pattern) {
			errorLogger.Warnw("failed to validate a pattern", "pattern", cfg.Pattern)
			continue
		}
		level, err := LevelFromString(cfg.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "logger pattern %q", cfg.Pattern)
		}
		rules = append(rules, levelRule{matcher: patternToRegexp(cfg.Pattern), level: level})
	}
	return rules, nil
}

// Registry tracks named loggers so their levels can be driven by LoggerPatternConfig entries.
type Registry struct {
	mu      sync.Mutex
	loggers map[string]Logger
	rules   []levelRule
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{loggers: make(map[string]Logger)}
}

// levelFor returns the level of the last rule matching name. Must be called with lr.mu held.
func (lr *Registry) levelFor(name string) (Level, bool) {
	for i := len(lr.rules) - 1; i >= 0; i-- {
		if lr.rules[i].matcher.MatchString(name) {
			return lr.rules[i].level, true
		}
	}
	return INFO, false
}

// LoggerNamed returns the logger registered under name.
func (lr *Registry) LoggerNamed(name string) (Logger, bool) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	logger, ok := lr.loggers[name]
	return logger, ok
}

// UpdateConfig replaces the pattern configuration and re-levels every registered logger. When
// several patterns match, the last one wins. Loggers matching no pattern are reset to INFO.
func (lr *Registry) UpdateConfig(cfgs []LoggerPatternConfig, errorLogger Logger) error {
	rules, err := compileRules(cfgs, errorLogger)
	if err != nil {
		return err
	}
	lr.mu.Lock()
	defer lr.mu.Unlock()
	lr.rules = rules
	for name, logger := range lr.loggers {
		level, _ := lr.levelFor(name)
		logger.SetLevel(level)
	}
	return nil
}

// RegisteredLoggerNames returns the sorted names of every registered logger.
func (lr *Registry) RegisteredLoggerNames() []string {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	names := make([]string, 0, len(lr.loggers))
	for name := range lr.loggers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// GetOrRegister returns the logger already registered under name, or registers logger and applies
// the matching pattern, if any. Concurrent callers all get the first registered logger.
func (lr *Registry) GetOrRegister(name string, logger Logger) Logger {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	if existing, ok := lr.loggers[name]; ok {
		return existing
	}
	lr.loggers[name] = logger
	if level, ok := lr.levelFor(name); ok {
		logger.SetLevel(level)
	}
	return logger
}
