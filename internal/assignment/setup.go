package assignment

import (
	"log"

	"github.com/pois-treasure/poi-backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&Assignment{}); err != nil {
		log.Fatal("Failed to auto-migrate assignment tables: ", err)
	}
}
