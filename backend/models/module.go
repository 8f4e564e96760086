package models

import "gorm.io/gorm"

// Module is read-mostly content: the core consults it but only the
// out-of-scope authoring surface ever writes it.
type Module struct {
	gorm.Model
	Name        string `json:"name"`
	Content     string `json:"content"`
	Document    string `json:"document,omitempty"`
	AudioFR     string `json:"audio_fr,omitempty"`
	AudioEN     string `json:"audio_en,omitempty"`
	AudioES     string `json:"audio_es,omitempty"`
	SubtitlesFR string `json:"subtitles_fr,omitempty"`
	SubtitlesEN string `json:"subtitles_en,omitempty"`
	SubtitlesES string `json:"subtitles_es,omitempty"`
}

type QuizQuestion struct {
	gorm.Model
	ModuleID      uint   `json:"module_id"`
	Question      string `json:"question"`
	Options       string `json:"options"` // JSON array of options
	Answer        string `json:"answer"`
	SequenceOrder int    `json:"sequence_order"`
}
