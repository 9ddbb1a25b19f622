package pois

import (
	"log"

	"github.com/pois-treasure/poi-backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&POI{}); err != nil {
		log.Fatal("Failed to auto-migrate pois tables: ", err)
	}
}
