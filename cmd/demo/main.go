package main

import (
	"database/sql"
	"fmt"
	"log"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/egarim/editorhost/internal/sessions"
	"github.com/egarim/editorhost/internal/settings"
	"github.com/egarim/editorhost/internal/store"
	"github.com/egarim/editorhost/pkg/adapter"
	"github.com/egarim/editorhost/pkg/host"
	"github.com/egarim/editorhost/pkg/persist"
)

var languages = []string{"markdown", "go", "sql", "json", "yaml", "plaintext"}

func main() {
	if err := settings.Initialize(); err != nil {
		log.Printf("Failed to initialize settings: %v", err)
	}
	cfg := settings.RefreshCurrent()

	documents, err := store.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open document store: %v", err)
	}
	defer documents.Close()

	bridge := persist.NewStandardBridge(cfg.DefaultLanguage)
	manager := sessions.NewManager()

	myApp := app.New()
	myWindow := myApp.NewWindow("Editor Host Demo")
	myWindow.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))

	// Start on a fresh document
	doc := bridge.OnCreate()
	binding := host.NewInProcess(cfg.AdapterOptions())
	view := binding.Bind(doc)
	if view.Degraded() {
		log.Printf("Editor widget unavailable, running degraded")
	}
	session, err := manager.Open("untitled", "inprocess", doc, view)
	if err != nil {
		log.Fatalf("Failed to open session: %v", err)
	}

	statusLabel := widget.NewLabel("Ready")
	keyEntry := widget.NewEntry()
	keyEntry.SetText("untitled")

	refreshStatus := func() {
		dirty := ""
		if view.Dirty() {
			dirty = " (modified)"
		}
		statusLabel.SetText(fmt.Sprintf("%s — %s%s", keyEntry.Text, doc.Language(), dirty))
	}

	doc.Subscribe(func(text, language string) {
		fyne.Do(refreshStatus)
	})

	languageSelect := widget.NewSelect(languages, func(language string) {
		doc.SetLanguage(language)
		view.PushValue(doc)
		refreshStatus()
	})
	languageSelect.SetSelected(doc.Language())

	themeSelect := widget.NewSelect([]string{
		string(adapter.ThemeLight),
		string(adapter.ThemeDark),
		string(adapter.ThemeHighContrast),
	}, func(name string) {
		cfg.EditorTheme = name
		if err := settings.Save(); err != nil {
			log.Printf("Failed to save settings: %v", err)
		}
	})
	themeSelect.SetSelected(cfg.EditorTheme)

	readOnlyCheck := widget.NewCheck("Read only", func(checked bool) {
		manager.SetEditable(!checked)
	})

	saveBtn := widget.NewButton("Save", func() {
		key := keyEntry.Text
		if key == "" {
			dialog.ShowInformation("No Key", "Enter a document key before saving", myWindow)
			return
		}
		if err := documents.SaveFrom(bridge, key, doc); err != nil {
			dialog.ShowError(err, myWindow)
			return
		}
		view.ClearDirty()
		if err := manager.Rename(session.ID, key); err != nil {
			log.Printf("Failed to rename session: %v", err)
		}
		refreshStatus()
	})

	loadBtn := widget.NewButton("Load", func() {
		key := keyEntry.Text
		loaded, err := documents.LoadInto(bridge, key)
		if err == sql.ErrNoRows {
			dialog.ShowInformation("Not Found", fmt.Sprintf("No document stored under %q", key), myWindow)
			return
		}
		if err != nil {
			dialog.ShowError(err, myWindow)
			return
		}
		doc.CopyFrom(loaded)
		view.PushValue(doc)
		view.ClearDirty()
		languageSelect.SetSelected(doc.Language())
		refreshStatus()
	})

	browseBtn := widget.NewButton("Browse", func() {
		showDocumentBrowser(myWindow, documents, func(key string) {
			keyEntry.SetText(key)
			loadBtn.OnTapped()
		})
	})

	newBtn := widget.NewButton("New", func() {
		doc.CopyFrom(bridge.OnCreate())
		view.PushValue(doc)
		view.ClearDirty()
		keyEntry.SetText("untitled")
		languageSelect.SetSelected(doc.Language())
		refreshStatus()
	})

	toolbar := container.NewHBox(
		newBtn,
		saveBtn,
		loadBtn,
		browseBtn,
		widget.NewSeparator(),
		widget.NewLabel("Language:"),
		languageSelect,
		widget.NewLabel("Theme:"),
		themeSelect,
		readOnlyCheck,
	)

	top := container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel("Key:"), nil, keyEntry),
		toolbar,
	)

	myWindow.SetContent(container.NewBorder(top, statusLabel, nil, nil, view.Content))
	myWindow.SetCloseIntercept(func() {
		if err := manager.CloseAll(); err != nil {
			log.Printf("Failed to close sessions: %v", err)
		}
		myWindow.Close()
	})
	myWindow.ShowAndRun()
}

func showDocumentBrowser(parent fyne.Window, documents *store.Store, onPick func(key string)) {
	records, err := documents.ListDocuments()
	if err != nil {
		dialog.ShowError(err, parent)
		return
	}
	if len(records) == 0 {
		dialog.ShowInformation("No Documents", "Nothing has been saved yet", parent)
		return
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })

	list := widget.NewList(
		func() int { return len(records) },
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			record := records[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s  [%s]", record.Key, record.Language))
		},
	)

	scroll := container.NewScroll(list)
	scroll.SetMinSize(fyne.NewSize(400, 300))

	d := dialog.NewCustom("Stored Documents", "Close", scroll, parent)
	list.OnSelected = func(id widget.ListItemID) {
		d.Hide()
		onPick(records[id].Key)
	}
	d.Resize(fyne.NewSize(450, 400))
	d.Show()
}
