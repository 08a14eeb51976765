package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

func main() {
	// optional sheet file next to the binary's working dir; built-in sample otherwise
	path := findConfig(configCandidates)
	cfg, err := loadConfig(path)
	if err != nil {
		log.Fatal("failed to load config:", err)
	}
	if path != "" {
		log.Printf("loaded sheet config from %s", path)
	}

	// cells live only in memory and are gone on exit
	db, err := initializeDB(memoryDSN)
	if err != nil {
		log.Fatal("failed to open database:", err)
	}
	defer db.Close()

	lookup := newLookupTable(cfg.Lookup, cfg.UnknownLabel)
	model, err := NewSheetModel(db, cfg.Rows, cfg.Headers, cfg.CodedColumn, lookup)
	if err != nil {
		log.Fatal("failed to build table model:", err)
	}

	rows, err := getAllRows(db)
	if err != nil {
		log.Printf("warning: listing stored rows: %v", err)
	}
	for _, r := range rows {
		log.Printf("loaded row: %s", dumpRow(r))
	}

	// Initialize the application
	a := app.New()
	win := a.NewWindow(cfg.Title)
	win.SetContent(createUI(win, model))
	win.Resize(fyne.NewSize(cfg.Width, cfg.Height))
	win.ShowAndRun()
}
