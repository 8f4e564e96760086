package store

import (
	"os"
	"testing"

	"formadapt/backend/config"
	"formadapt/backend/utils"

	"gorm.io/gorm"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   "file::memory:?cache=shared",
	}

	var err error
	testDB, err = utils.InitDB(cfg)
	if err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}
