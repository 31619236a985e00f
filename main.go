package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/qaribhaider/learn-a-maze/agent/tabular/policy"
	"github.com/qaribhaider/learn-a-maze/agent/tabular/qlearning"
	"github.com/qaribhaider/learn-a-maze/environment"
	"github.com/qaribhaider/learn-a-maze/environment/mazeworld"
	"github.com/qaribhaider/learn-a-maze/experiment"
	"github.com/qaribhaider/learn-a-maze/experiment/tracker"
	"github.com/qaribhaider/learn-a-maze/maze"
	"github.com/qaribhaider/learn-a-maze/savefile"
)

func main() {
	// Overrides come from an optional .env file in the working directory
	_ = godotenv.Load()

	width := envInt("MAZE_WIDTH", 15)
	height := envInt("MAZE_HEIGHT", 11)
	maxSteps := uint(envInt("MAX_STEPS", 100_000))
	stepLimit := envInt("EPISODE_STEP_LIMIT", 500)
	seed := uint64(envInt("SEED", int(time.Now().UnixNano())))

	gen, err := maze.New(width, height)
	if err != nil {
		log.Fatalf("could not create generator: %v", err)
	}
	m := gen.Generate()
	fmt.Println(m)

	start := maze.Position{X: 0, Y: 0}
	goal := maze.Position{X: m.Width() - 1, Y: m.Height() - 1}

	starter, err := mazeworld.NewSingleStart(start, m)
	if err != nil {
		log.Fatalf("could not create starter: %v", err)
	}
	task, err := mazeworld.NewSolve(starter, m, goal,
		envFloat("STEP_REWARD", mazeworld.DefaultStepReward),
		envFloat("COLLISION_REWARD", mazeworld.DefaultCollisionReward),
		envFloat("GOAL_REWARD", mazeworld.DefaultGoalReward))
	if err != nil {
		log.Fatalf("could not create task: %v", err)
	}
	world, _, err := mazeworld.New(m, task,
		environment.NewStepLimit(stepLimit), 1.0)
	if err != nil {
		log.Fatalf("could not create environment: %v", err)
	}

	cfg := qlearning.Config{
		Alpha:          envFloat("ALPHA", qlearning.DefaultAlpha),
		Gamma:          envFloat("GAMMA", qlearning.DefaultGamma),
		InitialEpsilon: envFloat("INITIAL_EPSILON", qlearning.DefaultInitialEpsilon),
		MinEpsilon:     envFloat("MIN_EPSILON", qlearning.DefaultMinEpsilon),
		DecayRate:      envFloat("DECAY_RATE", qlearning.DefaultDecayRate),
	}
	a, err := cfg.CreateAgent(world, seed)
	if err != nil {
		log.Fatalf("could not create agent: %v", err)
	}
	q := a.(*qlearning.QLearning)

	// Tracker output is scoped to this run so repeated runs don't
	// clobber each other
	runID := uuid.NewString()
	returnsFile := fmt.Sprintf("returns-%s.bin", runID)
	lengthsFile := fmt.Sprintf("lengths-%s.bin", runID)

	e := experiment.NewOnline(world, q, maxSteps, []tracker.Tracker{
		tracker.NewReturn(returnsFile),
		tracker.NewEpisodeLength(lengthsFile),
		tracker.NewProgress(maxSteps),
	})
	if err := e.Run(); err != nil {
		log.Fatalf("experiment failed: %v", err)
	}
	e.Save()

	file := savefile.Snapshot(world.Maze(), start, goal, q, e.Episodes(),
		e.BestStepCount())
	out, err := os.Create(fmt.Sprintf("session-%s.json", runID))
	if err != nil {
		log.Fatalf("could not create save file: %v", err)
	}
	defer out.Close()
	if err := file.Encode(out); err != nil {
		log.Fatalf("could not save session: %v", err)
	}

	fmt.Printf("episodes: %d\n", e.Episodes())
	fmt.Printf("best steps to goal: %d\n", e.BestStepCount())
	fmt.Printf("final epsilon: %.4f\n", q.Epsilon())

	returns := tracker.LoadData(returnsFile)
	if n := len(returns); n > 10 {
		fmt.Println("last returns:", returns[n-10:])
	} else {
		fmt.Println("returns:", returns)
	}

	greedyWalk(world, q, seed, stepLimit)
}

// greedyWalk replays the learned policy with exploration disabled and
// prints the path it takes
func greedyWalk(world *mazeworld.MazeWorld, q *qlearning.QLearning,
	seed uint64, stepLimit int) {

	greedy := policy.NewGreedy(q, seed)

	step, err := world.Reset()
	if err != nil {
		log.Fatalf("could not reset for the greedy walk: %v", err)
	}

	path := []maze.Position{step.Position()}
	for !step.Last() && len(path) <= stepLimit {
		action := greedy.SelectAction(step)
		step, _, err = world.Step(action)
		if err != nil {
			log.Fatalf("greedy walk failed: %v", err)
		}
		path = append(path, step.Position())
	}

	if world.AtGoal(step.Observation) {
		fmt.Printf("greedy path reaches the goal in %d steps: %v\n",
			len(path)-1, path)
	} else {
		fmt.Printf("greedy path does not reach the goal within %d steps\n",
			stepLimit)
	}
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("ignoring %s=%q: not an integer", key, v)
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("ignoring %s=%q: not a number", key, v)
	}
	return fallback
}
