package profiles

import (
	"log"

	"github.com/pois-treasure/poi-backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&Profile{}); err != nil {
		log.Fatal("Failed to auto-migrate profiles tables: ", err)
	}
}
