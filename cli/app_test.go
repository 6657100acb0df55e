package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/motionlab/motion/motionplan/model"
)

const rampTrajectory = `{
	// two joints moving together
	joints: ["shoulder", "elbow"],
	points: [
		{time_from_start: 0, positions: [0, 0], velocities: [1, 1]},
		{time_from_start: 1, positions: [1, 2], velocities: [1, 1]},
		{time_from_start: 2, positions: [2, 4], velocities: [1, 1]},
	],
}`

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := NewApp(&out, &errOut).Run(append([]string{"motion"}, args...))
	return out.String(), errOut.String(), err
}

func TestValidate(t *testing.T) {
	traj := writeTemp(t, "traj.json5", rampTrajectory)

	out, _, err := runApp(t, "validate", "--trajectory", traj)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "trajectory: 3 points over 2s")
	test.That(t, out, test.ShouldContainSubstring, "joints [shoulder, elbow]")
	test.That(t, out, test.ShouldContainSubstring, "velocities true")

	t.Run("velocity limits", func(t *testing.T) {
		limits := writeTemp(t, "limits.json5", `{joints: ["shoulder", "elbow"], max_velocity: [2, 0.5]}`)
		out, _, err := runApp(t, "validate", "--trajectory", traj, "--limits", limits)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "velocity limit exceeded at point 0: joint elbow")

		limits = writeTemp(t, "limits.json5", `{joints: ["shoulder", "elbow"], max_velocity: [2, null]}`)
		out, _, err = runApp(t, "validate", "--trajectory", traj, "--limits", limits)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "velocities within limits")
	})

	t.Run("parameters", func(t *testing.T) {
		params := writeTemp(t, "params.json5", `{max_velocity: [1, 1], max_acceleration: [2, 2]}`)
		out, _, err := runApp(t, "validate", "--parameters", params)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, "parameters: 2 joints")

		bad := writeTemp(t, "bad.json5", `{max_velocity: [1, -1], max_acceleration: [2]}`)
		_, _, err = runApp(t, "validate", "--parameters", bad)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("nothing to validate", func(t *testing.T) {
		_, _, err := runApp(t, "validate")
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestEvaluate(t *testing.T) {
	traj := writeTemp(t, "traj.json5", rampTrajectory)

	out, _, err := runApp(t, "evaluate", "--trajectory", traj, "--time", "1.5", "--delay", "0.5")
	test.That(t, err, test.ShouldBeNil)
	var p evaluatedPoint
	test.That(t, json.Unmarshal([]byte(out), &p), test.ShouldBeNil)
	test.That(t, p.Joints, test.ShouldResemble, []string{"shoulder", "elbow"})
	test.That(t, p.TimeFromStart, test.ShouldAlmostEqual, 1.5)
	test.That(t, p.Positions[0], test.ShouldAlmostEqual, 1.0)
	test.That(t, p.Positions[1], test.ShouldAlmostEqual, 2.0)

	t.Run("configured default delay", func(t *testing.T) {
		conf := writeTemp(t, "conf.json5", `{default_delay: 1}`)
		out, _, err := runApp(t, "--config", conf, "evaluate", "--trajectory", traj, "--time", "2")
		test.That(t, err, test.ShouldBeNil)
		var p evaluatedPoint
		test.That(t, json.Unmarshal([]byte(out), &p), test.ShouldBeNil)
		test.That(t, p.Positions[0], test.ShouldAlmostEqual, 1.0)
	})
}

func TestMerge(t *testing.T) {
	a := writeTemp(t, "a.json5", rampTrajectory)
	b := writeTemp(t, "b.json5", `{
		joints: ["wrist"],
		points: [
			{time_from_start: 0, positions: [0]},
			{time_from_start: 1, positions: [3]},
		],
	}`)
	dest := filepath.Join(t.TempDir(), "merged.json")

	out, _, err := runApp(t, "merge", "--a", a, "--b", b, "--delay-b", "2", "--out", dest)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldBeEmpty)

	var merged model.JointTrajectory
	test.That(t, model.ReadFile(dest, &merged), test.ShouldBeNil)
	test.That(t, merged.Joints, test.ShouldResemble, []string{"shoulder", "elbow", "wrist"})
	test.That(t, merged.Points, test.ShouldHaveLength, 3)
	last := merged.Points[len(merged.Points)-1]
	test.That(t, last.TimeFromStart, test.ShouldAlmostEqual, 3.0)
	test.That(t, last.Positions[2], test.ShouldAlmostEqual, 3.0)
}

func TestPlan(t *testing.T) {
	path := writeTemp(t, "path.json5", `{joints: ["shoulder", "elbow"], points: [[0, 0], [0.5, 1]]}`)
	params := writeTemp(t, "params.json5", `{
		max_velocity: [1, 1],
		max_acceleration: [6, 6],
		sample_resolution: 0.25,
	}`)

	out, errOut, err := runApp(t, "--debug", "plan", "--path", path, "--parameters", params)
	test.That(t, err, test.ShouldBeNil)
	var traj model.JointTrajectory
	test.That(t, json.Unmarshal([]byte(out), &traj), test.ShouldBeNil)
	test.That(t, traj.IsValid, test.ShouldBeNil)
	test.That(t, traj.Points, test.ShouldHaveLength, 5)
	test.That(t, traj.Points[4].Positions, test.ShouldResemble, []float64{0.5, 1})
	test.That(t, errOut, test.ShouldContainSubstring, "motion.planner")

	t.Run("velocity limits mark the plan invalid", func(t *testing.T) {
		limits := writeTemp(t, "limits.json5", `{joints: ["shoulder", "elbow"], max_velocity: [0.01, 0.01]}`)
		out, errOut, err := runApp(t, "plan", "--path", path, "--parameters", params, "--limits", limits)
		test.That(t, err, test.ShouldBeNil)
		var traj model.JointTrajectory
		test.That(t, json.Unmarshal([]byte(out), &traj), test.ShouldBeNil)
		test.That(t, traj.IsValid, test.ShouldNotBeNil)
		test.That(t, *traj.IsValid, test.ShouldBeFalse)
		test.That(t, errOut, test.ShouldContainSubstring, "WARN")
	})

	t.Run("waypoint outside position limits", func(t *testing.T) {
		limits := writeTemp(t, "limits.json5", `{joints: ["shoulder", "elbow"], max_position: [0.25, null]}`)
		_, _, err := runApp(t, "plan", "--path", path, "--parameters", params, "--limits", limits)
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestTwist(t *testing.T) {
	from := writeTemp(t, "from.json5", `{translation: {x: 0, y: 0, z: 0}, rotation: {w: 1, x: 0, y: 0, z: 0}}`)
	to := writeTemp(t, "to.json5", `{translation: {x: 2, y: 0, z: 0}, rotation: {w: 1, x: 0, y: 0, z: 0}}`)

	out, _, err := runApp(t, "twist", "--from", from, "--to", to, "--duration", "2")
	test.That(t, err, test.ShouldBeNil)
	var twist model.Twist
	test.That(t, json.Unmarshal([]byte(out), &twist), test.ShouldBeNil)
	test.That(t, twist.Linear.X, test.ShouldAlmostEqual, 1.0)
	test.That(t, twist.Angular.Z, test.ShouldAlmostEqual, 0.0)

	other := writeTemp(t, "other.json5", `{frame: "camera", translation: {x: 1, y: 0, z: 0}, rotation: {w: 1, x: 0, y: 0, z: 0}}`)
	_, _, err = runApp(t, "twist", "--from", from, "--to", other)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, strings.Contains(err.Error(), "frame"), test.ShouldBeTrue)
}
