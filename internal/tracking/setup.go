package tracking

import (
	"log"

	"github.com/pois-treasure/poi-backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&TrackingPoint{}); err != nil {
		log.Fatal("Failed to auto-migrate tracking tables: ", err)
	}
}
