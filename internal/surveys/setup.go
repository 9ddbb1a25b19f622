package surveys

import (
	"log"

	"github.com/pois-treasure/poi-backend/internal/db"
)

func Init() {
	if err := db.DB.AutoMigrate(&SurveyReport{}); err != nil {
		log.Fatal("Failed to auto-migrate survey tables: ", err)
	}
}
