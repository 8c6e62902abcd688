package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/appscout"
	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/ingest"
)

var listings = []*core.App{
	{
		AppID: "com.lumos.sleepwell", Name: "SleepWell", Category: "Health & Fitness",
		Rating: 4.6, RatingCount: 18400,
		Description: "Relaxing sounds, bedtime stories and guided breathing to help you fall asleep faster.",
		Keywords:    map[string]float64{"sleep": 0.92, "relax": 0.71, "sounds": 0.55, "bedtime": 0.48},
	},
	{
		AppID: "com.stillpoint.calm", Name: "Stillpoint", Category: "Health & Fitness",
		Rating: 4.4, RatingCount: 9200,
		Description: "Guided meditation sessions for stress relief, focus and better rest.",
		Keywords:    map[string]float64{"meditation": 0.88, "stress": 0.64, "focus": 0.52, "relax": 0.49},
	},
	{
		AppID: "com.fernworks.pennywise", Name: "Pennywise Budget", Category: "Finance",
		Rating: 4.7, RatingCount: 51200,
		Description: "Track expenses, set budgets and watch your savings grow with weekly reports.",
		Keywords:    map[string]float64{"budget": 0.9, "expense": 0.77, "savings": 0.58, "money": 0.5},
	},
	{
		AppID: "com.fernworks.billminder", Name: "BillMinder", Category: "Finance",
		Rating: 4.2, RatingCount: 6700,
		Description: "Never miss a payment. Reminders for bills, subscriptions and renewals.",
		Keywords:    map[string]float64{"bills": 0.85, "reminders": 0.66, "subscriptions": 0.6},
	},
	{
		AppID: "com.atlaslabs.taskforge", Name: "TaskForge", Category: "Productivity",
		Rating: 4.5, RatingCount: 30100,
		Description: "Plan projects, manage tasks and hit deadlines with kanban boards and timelines.",
		Keywords:    map[string]float64{"tasks": 0.89, "projects": 0.7, "kanban": 0.56, "deadlines": 0.45},
	},
	{
		AppID: "com.atlaslabs.inkpad", Name: "Inkpad Notes", Category: "Productivity",
		Rating: 4.3, RatingCount: 12800,
		Description: "Fast note taking with markdown, tags and instant search.",
		Keywords:    map[string]float64{"notes": 0.91, "markdown": 0.62, "search": 0.44},
	},
	{
		AppID: "com.verdant.plantpal", Name: "PlantPal", Category: "Lifestyle",
		Rating: 4.8, RatingCount: 8100,
		Description: "Water reminders, care guides and plant identification for happy houseplants.",
		Keywords:    map[string]float64{"plants": 0.9, "watering": 0.68, "garden": 0.54},
	},
	{
		AppID: "com.trailhead.stride", Name: "Stride Running", Category: "Health & Fitness",
		Rating: 4.6, RatingCount: 44300,
		Description: "GPS run tracking, training plans and race-day pacing for every level.",
		Keywords:    map[string]float64{"running": 0.93, "fitness": 0.71, "training": 0.6, "gps": 0.42},
	},
	{
		AppID: "com.polyglot.lingua", Name: "Lingua Leap", Category: "Education",
		Rating: 4.5, RatingCount: 76900,
		Description: "Learn languages with bite-size lessons, speech practice and spaced repetition.",
		Keywords:    map[string]float64{"language": 0.9, "learning": 0.74, "vocabulary": 0.58, "lessons": 0.47},
	},
	{
		AppID: "com.nightowl.stargaze", Name: "Stargaze", Category: "Education",
		Rating: 4.7, RatingCount: 15600,
		Description: "Point your phone at the sky to identify stars, planets and constellations.",
		Keywords:    map[string]float64{"astronomy": 0.88, "stars": 0.72, "sky": 0.55},
	},
	{
		AppID: "com.hearthside.simmer", Name: "Simmer Recipes", Category: "Food & Drink",
		Rating: 4.4, RatingCount: 22000,
		Description: "Thousands of recipes with smart grocery lists and step-by-step cook mode.",
		Keywords:    map[string]float64{"recipes": 0.92, "cooking": 0.75, "grocery": 0.53},
	},
	{
		AppID: "com.wayfind.roamer", Name: "Roamer", Category: "Travel",
		Rating: 4.3, RatingCount: 18800,
		Description: "Offline maps, itinerary planning and local tips for independent travelers.",
		Keywords:    map[string]float64{"travel": 0.9, "maps": 0.69, "itinerary": 0.51},
	},
	{
		AppID: "com.pixelforge.shutter", Name: "Shutter Studio", Category: "Photography",
		Rating: 4.5, RatingCount: 27400,
		Description: "Professional photo editing with curves, presets and batch export.",
		Keywords:    map[string]float64{"photo": 0.91, "editing": 0.76, "filters": 0.5},
	},
	{
		AppID: "com.quietude.habitloop", Name: "Habit Loop", Category: "Productivity",
		Rating: 4.6, RatingCount: 10900,
		Description: "Build lasting habits with streaks, gentle reminders and weekly reviews.",
		Keywords:    map[string]float64{"habits": 0.9, "streaks": 0.6, "reminders": 0.55},
	},
	{
		AppID: "com.soundbath.drift", Name: "Drift Noise", Category: "Health & Fitness",
		Rating: 4.1, RatingCount: 5200,
		Description: "White noise, rain and ambient mixes for sleep, study and focus.",
		Keywords:    map[string]float64{"noise": 0.82, "sleep": 0.66, "focus": 0.58, "rain": 0.43},
	},
}

var seedFileName = flag.String("src", "", "JSON file of app listings")
var dbPath = flag.String("db", "./catalog_db", "path to the catalog database")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// listingsFromFile loads app listings from a JSON array file.
func listingsFromFile(filename string) ([]*core.App, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var apps []*core.App
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ingestBatched feeds listings to the pipeline in batches.
func ingestBatched(ctx context.Context, pipeline *ingest.Pipeline, apps []*core.App, batchSize int) error {
	for i := 0; i < len(apps); i += batchSize {
		end := i + batchSize
		if end > len(apps) {
			end = len(apps)
		}
		if _, err := pipeline.Ingest(ctx, apps[i:end]...); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	cat, err := appscout.NewCatalog(*dbPath)
	if err != nil {
		panic(err)
	}
	defer cat.Close()

	pipeline, err := cat.NewIngestPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()

	// Determine source of seed data
	apps := listings
	if seedFileName != nil && *seedFileName != "" {
		apps, err = listingsFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	}

	// Ingest in batches of 5
	if err := ingestBatched(ctx, pipeline, apps, 5); err != nil {
		panic(err)
	}

	slog.Info("seeded catalog", "apps", len(apps), "db", *dbPath)
}
