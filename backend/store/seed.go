package store

import (
	"formadapt/backend/models"
	"formadapt/backend/utils"

	"gorm.io/gorm"
)

// SeedDemoData loads the demo accounts, modules and quiz questions on an
// empty database. Idempotent: a populated table is left alone.
func SeedDemoData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		demoUsers := []struct {
			name, email, password, role string
		}{
			{"Admin", "admin@example.com", "password", "admin"},
			{"User", "user@example.com", "password", "user"},
		}
		for _, u := range demoUsers {
			hash, salt, err := utils.HashPassword(u.password)
			if err != nil {
				return err
			}
			user := models.User{
				Name:         u.name,
				Email:        u.email,
				PasswordHash: hash,
				Salt:         salt,
				Role:         u.role,
			}
			if err := db.Create(&user).Error; err != nil {
				return err
			}
		}
	}

	var moduleCount int64
	if err := db.Model(&models.Module{}).Count(&moduleCount).Error; err != nil {
		return err
	}
	if moduleCount > 0 {
		return nil
	}

	modules := []models.Module{
		{
			Name:        "Introduction à Word",
			Content:     "<h1>Bienvenue sur Word</h1><p>Ceci est une introduction.</p>",
			Document:    "/documents/module1.pdf",
			AudioFR:     "/audio/module1_fr.mp3",
			AudioEN:     "/audio/module1_en.mp3",
			AudioES:     "/audio/module1_es.mp3",
			SubtitlesFR: "/subtitles/module1_fr.vtt",
			SubtitlesEN: "/subtitles/module1_en.vtt",
			SubtitlesES: "/subtitles/module1_es.vtt",
		},
		{
			Name:        "Découvrir Excel",
			Content:     "<h1>Bienvenue sur Excel</h1><p>Ceci est une introduction à Excel.</p>",
			Document:    "/documents/module2.pdf",
			AudioFR:     "/audio/module2_fr.mp3",
			AudioEN:     "/audio/module2_en.mp3",
			AudioES:     "/audio/module2_es.mp3",
			SubtitlesFR: "/subtitles/module2_fr.vtt",
			SubtitlesEN: "/subtitles/module2_en.vtt",
			SubtitlesES: "/subtitles/module2_es.vtt",
		},
	}
	for i := range modules {
		if err := db.Create(&modules[i]).Error; err != nil {
			return err
		}
	}

	questions := []models.QuizQuestion{
		{ModuleID: modules[0].ID, Question: "Question 1 ?", Options: `["A", "B", "C", "D"]`, Answer: "B", SequenceOrder: 1},
		{ModuleID: modules[0].ID, Question: "Question 2 ?", Options: `["A", "B", "C", "D"]`, Answer: "C", SequenceOrder: 2},
		{ModuleID: modules[1].ID, Question: "Question 3 ?", Options: `["A", "B", "C", "D"]`, Answer: "A", SequenceOrder: 1},
		{ModuleID: modules[1].ID, Question: "Question 4 ?", Options: `["A", "B", "C", "D"]`, Answer: "D", SequenceOrder: 2},
	}
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
