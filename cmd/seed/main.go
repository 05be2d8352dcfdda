// Command main runs the database seeder for Glimpse.
package main

import (
	"flag"
	"log"

	"glimpse/internal/config"
	"glimpse/internal/database"
	"glimpse/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	fanout := flag.Int("fanout", 5, "Average number of accounts each user follows")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixtures := flag.String("fixtures", "", "Path to a YAML fixtures file of named accounts")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, fanout=%d, clean=%v\n", *numUsers, *numPosts, *fanout, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		NumUsers:     *numUsers,
		NumPosts:     *numPosts,
		ShouldClean:  *shouldClean,
		FollowFanout: *fanout,
	}

	if err := seed.Seed(database.DB, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if *fixtures != "" {
		if err := seed.LoadFixtures(database.DB, *fixtures, opts); err != nil {
			log.Fatalf("Fixture seeding failed: %v", err)
		}
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
