package models

import (
	"log"

	"bitbucket.org/mmdatafocus/stocks_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&ItemCategory{}, &Item{},
		&ConsumptionRecord{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
