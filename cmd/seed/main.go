package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/survey-backend/internal/app"
	"github.com/yungbote/survey-backend/internal/seed"
)

func main() {
	var path string
	var dryRun bool
	flag.StringVar(&path, "file", "seed.yaml", "path to the YAML seed file")
	flag.BoolVar(&dryRun, "dry-run", false, "parse the file and print what would be created")
	flag.Parse()

	_ = godotenv.Load()

	f, err := seed.Load(path)
	if err != nil {
		fmt.Printf("load seed: %v\n", err)
		os.Exit(1)
	}
	if dryRun {
		users := len(f.Users)
		for _, t := range f.Teams {
			users += len(t.Users)
		}
		fmt.Printf("dry-run: %d teams, %d users, %d surveys\n", len(f.Teams), users, len(f.Surveys))
		return
	}

	ctx := context.Background()
	application, err := app.New(ctx)
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	seeder := seed.NewSeeder(application.Log, application.Services.Directory, application.Services.Survey)
	sum, err := seeder.Apply(ctx, f)
	if err != nil {
		fmt.Printf("seed failed after %d teams, %d users, %d surveys: %v\n", sum.Teams, sum.Users, sum.Surveys, err)
		application.Close()
		os.Exit(1)
	}
	fmt.Printf("seeded %d teams, %d users, %d surveys\n", sum.Teams, sum.Users, sum.Surveys)
}
