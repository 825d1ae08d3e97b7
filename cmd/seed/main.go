package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hydropoints/internal/config"
	"hydropoints/internal/model"
	"hydropoints/internal/repository"
)

// Seeds four demo users whose behavioral shapes span the score range:
// an honest logger, a flatliner, a household mismatch with contradicting
// scans, and a bulk editor.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	profileRepo := repository.NewProfileRepo(db)
	logRepo := repository.NewLogRepo(db)
	scanRepo := repository.NewScanRepo(db)

	// Fixed seed keeps reruns reproducible
	rng := rand.New(rand.NewSource(42))
	today := time.Now().Truncate(24 * time.Hour)

	seedHonest(ctx, profileRepo, logRepo, scanRepo, rng, today)
	seedFlatliner(ctx, profileRepo, logRepo, today)
	seedMismatch(ctx, profileRepo, logRepo, scanRepo, today)
	seedBulkEditor(ctx, profileRepo, logRepo, rng, today)

	log.Println("Seed complete")
}

func seedHonest(ctx context.Context, profiles repository.ProfileRepo, logs repository.LogRepo, scans repository.ScanRepo, rng *rand.Rand, today time.Time) {
	userID := "user_honest01"
	mustUpsert(ctx, profiles, &model.UserProfile{UserID: userID, Nickname: "Dana", HouseholdSize: 1})

	for d := 29; d >= 0; d-- {
		// Skips roughly one day in ten, like a real person
		if rng.Float64() < 0.1 {
			continue
		}
		day := today.AddDate(0, 0, -d)
		amount := 16 + rng.Float64()*10
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			amount *= 1.15
		}
		mustLog(ctx, logs, &model.DailyLogEntry{UserID: userID, Date: day, Amount: amount})

		if rng.Float64() < 0.2 {
			mustScan(ctx, scans, &model.ExternalScan{
				UserID:         userID,
				ScannedAt:      day.Add(12 * time.Hour),
				DeclaredAmount: amount * 0.8,
				Label:          "Spring Water 500ml",
			})
		}
	}
	log.Printf("Seeded %s (honest logger)", userID)
}

func seedFlatliner(ctx context.Context, profiles repository.ProfileRepo, logs repository.LogRepo, today time.Time) {
	userID := "user_flatline1"
	mustUpsert(ctx, profiles, &model.UserProfile{UserID: userID, Nickname: "Rory", HouseholdSize: 1})

	for d := 29; d >= 0; d-- {
		mustLog(ctx, logs, &model.DailyLogEntry{
			UserID: userID,
			Date:   today.AddDate(0, 0, -d),
			Amount: 20,
		})
	}
	log.Printf("Seeded %s (flatliner, identical amount every day)", userID)
}

func seedMismatch(ctx context.Context, profiles repository.ProfileRepo, logs repository.LogRepo, scans repository.ScanRepo, today time.Time) {
	userID := "user_mismatch1"
	mustUpsert(ctx, profiles, &model.UserProfile{UserID: userID, Nickname: "Sam", HouseholdSize: 4})

	for d := 29; d >= 0; d-- {
		day := today.AddDate(0, 0, -d)
		// Logs a trickle while the scans declare far more
		mustLog(ctx, logs, &model.DailyLogEntry{UserID: userID, Date: day, Amount: 2})
		if d%2 == 0 {
			mustScan(ctx, scans, &model.ExternalScan{
				UserID:         userID,
				ScannedAt:      day.Add(9 * time.Hour),
				DeclaredAmount: 35,
				Label:          "Family Pack 2L",
			})
		}
	}
	log.Printf("Seeded %s (household mismatch + contradicting scans)", userID)
}

func seedBulkEditor(ctx context.Context, profiles repository.ProfileRepo, logs repository.LogRepo, rng *rand.Rand, today time.Time) {
	userID := "user_bulkedit1"
	mustUpsert(ctx, profiles, &model.UserProfile{UserID: userID, Nickname: "Alex", HouseholdSize: 1})

	for d := 29; d >= 0; d-- {
		day := today.AddDate(0, 0, -d)
		if d%7 == 0 {
			// Backfills a whole week in one sitting
			for i := 0; i < 8; i++ {
				mustLog(ctx, logs, &model.DailyLogEntry{UserID: userID, Date: day, Amount: 5 + rng.Float64()*3})
			}
			continue
		}
		if d%5 == 0 {
			// Spike followed by near-nothing
			mustLog(ctx, logs, &model.DailyLogEntry{UserID: userID, Date: day, Amount: 60})
		} else if d%5 == 1 {
			mustLog(ctx, logs, &model.DailyLogEntry{UserID: userID, Date: day, Amount: 1})
		} else {
			mustLog(ctx, logs, &model.DailyLogEntry{UserID: userID, Date: day, Amount: 18 + rng.Float64()*4})
		}
	}
	log.Printf("Seeded %s (bulk edits, spikes and drops)", userID)
}

func mustUpsert(ctx context.Context, repo repository.ProfileRepo, profile *model.UserProfile) {
	if err := repo.Upsert(ctx, profile); err != nil {
		log.Fatalf("Failed to seed profile %s: %v", profile.UserID, err)
	}
}

func mustLog(ctx context.Context, repo repository.LogRepo, entry *model.DailyLogEntry) {
	if err := repo.Create(ctx, entry); err != nil {
		log.Fatalf("Failed to seed log for %s: %v", entry.UserID, err)
	}
}

func mustScan(ctx context.Context, repo repository.ScanRepo, scan *model.ExternalScan) {
	if err := repo.Create(ctx, scan); err != nil {
		log.Fatalf("Failed to seed scan for %s: %v", scan.UserID, err)
	}
}
