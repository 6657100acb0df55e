// Package cli contains the motion command line tool.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// CLI flags.
const (
	configFlag = "config"
	debugFlag  = "debug"

	trajectoryFlag     = "trajectory"
	parametersFlag     = "parameters"
	taskParametersFlag = "task-parameters"
	limitsFlag         = "limits"
	pathFlag           = "path"
	timeFlag           = "time"
	delayFlag          = "delay"
	aFlag              = "a"
	bFlag              = "b"
	delayAFlag         = "delay-a"
	delayBFlag         = "delay-b"
	outFlag            = "out"
	fromFlag           = "from"
	toFlag             = "to"
	durationFlag       = "duration"
)

// NewApp returns the motion CLI writing results to out and logs and errors to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "motion",
		Usage:           "inspect, sample, combine and plan robot motions",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "validate",
				Usage: "load motion files and report whether they are well formed",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: trajectoryFlag, Usage: "joint trajectory `FILE`"},
					&cli.PathFlag{Name: parametersFlag, Usage: "plan parameters `FILE`"},
					&cli.PathFlag{Name: taskParametersFlag, Usage: "task space plan parameters `FILE`"},
					&cli.PathFlag{Name: limitsFlag, Usage: "joint limits `FILE`, checked against the trajectory velocities"},
				},
				Action: ValidateAction,
			},
			{
				Name:  "evaluate",
				Usage: "sample a trajectory at a time",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: trajectoryFlag, Required: true, Usage: "joint trajectory `FILE`"},
					&cli.Float64Flag{Name: timeFlag, Required: true, Usage: "simulated time in `SECONDS`"},
					&cli.Float64Flag{Name: delayFlag, Usage: "start delay of the trajectory in `SECONDS`"},
				},
				Action: EvaluateAction,
			},
			{
				Name:  "merge",
				Usage: "combine two delayed trajectories into one synchronized trajectory",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: aFlag, Required: true, Usage: "first joint trajectory `FILE`"},
					&cli.PathFlag{Name: bFlag, Required: true, Usage: "second joint trajectory `FILE`"},
					&cli.Float64Flag{Name: delayAFlag, Usage: "start delay of the first trajectory in `SECONDS`"},
					&cli.Float64Flag{Name: delayBFlag, Usage: "start delay of the second trajectory in `SECONDS`"},
					&cli.PathFlag{Name: outFlag, Usage: "write the result to `FILE` instead of stdout"},
				},
				Action: MergeAction,
			},
			{
				Name:  "plan",
				Usage: "time parameterize a joint path with the linear planner",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: pathFlag, Required: true, Usage: "joint path `FILE`"},
					&cli.PathFlag{Name: parametersFlag, Required: true, Usage: "plan parameters `FILE`"},
					&cli.PathFlag{Name: limitsFlag, Usage: "joint limits `FILE` the plan must respect"},
					&cli.PathFlag{Name: outFlag, Usage: "write the result to `FILE` instead of stdout"},
				},
				Action: PlanAction,
			},
			{
				Name:  "twist",
				Usage: "compute the twist between two poses",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: fromFlag, Required: true, Usage: "start pose `FILE`"},
					&cli.PathFlag{Name: toFlag, Required: true, Usage: "end pose `FILE`"},
					&cli.Float64Flag{Name: durationFlag, Usage: "report the mean velocity over `SECONDS` instead"},
				},
				Action: TwistAction,
			},
		},
	}
}
