package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pois-treasure/poi-backend/internal/db"
	"github.com/pois-treasure/poi-backend/internal/pois"
	"github.com/pois-treasure/poi-backend/internal/profiles"
	"github.com/pois-treasure/poi-backend/internal/seeds"
)

func main() {
	var (
		file = flag.String("file", "", "path to YAML seed file with profiles and POIs")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load(".env.local")
	db.Connect()

	profiles.Init()
	pois.Init()

	if err := seeds.Run(db.DB, *file); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed data loaded from", *file)
}
