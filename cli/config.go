package cli

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/motionlab/motion/logging"
	"github.com/motionlab/motion/motionplan/model"
)

// Config is the optional JSON5 configuration file of the CLI.
type Config struct {
	// LogConfiguration sets logger levels by name pattern, e.g. "motion.planner" or "motion.*".
	LogConfiguration []logging.LoggerPatternConfig `json:"log_configuration,omitempty"`
	// DefaultDelay, in seconds, is used by evaluate and merge when no delay flag is given.
	DefaultDelay float64 `json:"default_delay,omitempty"`
	// StartTolerance bounds how far a plan may start from the first path point, in radians.
	StartTolerance *float64 `json:"start_tolerance,omitempty"`
}

// commandEnv is what every action needs: configuration, loggers and a context.
type commandEnv struct {
	ctx           context.Context
	conf          Config
	logger        logging.Logger
	plannerLogger logging.Logger
}

const (
	cliLoggerName     = "motion.cli"
	plannerLoggerName = "motion.planner"
)

func newCommandEnv(c *cli.Context) (*commandEnv, error) {
	var conf Config
	if path := c.Path(configFlag); path != "" {
		if err := model.ReadFile(path, &conf); err != nil {
			return nil, err
		}
	}

	root := logging.NewBlankLogger("motion")
	root.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	registry := logging.NewRegistry()
	env := &commandEnv{
		ctx:           c.Context,
		conf:          conf,
		logger:        registry.GetOrRegister(cliLoggerName, root.Sublogger("cli")),
		plannerLogger: registry.GetOrRegister(plannerLoggerName, root.Sublogger("planner")),
	}
	if err := registry.UpdateConfig(conf.LogConfiguration, env.logger); err != nil {
		return nil, err
	}
	if c.Bool(debugFlag) {
		env.logger.SetLevel(logging.DEBUG)
		env.plannerLogger.SetLevel(logging.DEBUG)
		env.ctx = logging.EnableDebugMode(env.ctx, "")
	}
	return env, nil
}

// delay returns the value of a delay flag, falling back to the configured default.
func (env *commandEnv) delay(c *cli.Context, flag string) float64 {
	if c.IsSet(flag) {
		return c.Float64(flag)
	}
	return env.conf.DefaultDelay
}
