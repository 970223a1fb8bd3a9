package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/egarim/editorhost/pkg/adapter"
	"github.com/egarim/editorhost/pkg/document"
)

// AppSettings holds all application settings
type AppSettings struct {
	// Editor Settings
	DefaultLanguage string `json:"default_language"`
	EditorTheme     string `json:"editor_theme"`
	FontSize        int    `json:"font_size"`
	AutomaticLayout bool   `json:"automatic_layout"`

	// Sizing Settings
	EditorWidth     string `json:"editor_width"`
	EditorHeight    string `json:"editor_height"`
	MinEditorWidth  int    `json:"min_editor_width"`
	MinEditorHeight int    `json:"min_editor_height"`

	// Storage Settings
	DatabasePath      string `json:"database_path"`
	AutoSaveDocuments bool   `json:"auto_save_documents"`

	// UI Settings
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`
}

// DefaultSettings returns the default application settings
func DefaultSettings() *AppSettings {
	defaultDBPath := filepath.Join(configDir(), "documents.db")

	return &AppSettings{
		// Editor Settings
		DefaultLanguage: document.DefaultLanguage,
		EditorTheme:     string(adapter.ThemeDark),
		FontSize:        14,
		AutomaticLayout: true,

		// Sizing Settings
		EditorWidth:     "100%",
		EditorHeight:    "100%",
		MinEditorWidth:  int(adapter.DefaultMinWidth),
		MinEditorHeight: int(adapter.DefaultMinHeight),

		// Storage Settings
		DatabasePath:      defaultDBPath,
		AutoSaveDocuments: true,

		// UI Settings
		WindowWidth:  1024,
		WindowHeight: 720,
	}
}

// Global settings instance
var Current *AppSettings

// configDirOverride redirects settings storage, mainly for tests.
var configDirOverride string

func configDir() string {
	if configDirOverride != "" {
		return configDirOverride
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".editorhost")
}

// RefreshCurrent returns the current settings instance
func RefreshCurrent() *AppSettings {
	if Current == nil {
		err := Load()
		if err != nil {
			Current = DefaultSettings()
		}
	}
	return Current
}

// Initialize loads settings from file or creates default settings
func Initialize() error {
	Current = DefaultSettings()

	settingsPath := getSettingsPath()
	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		// Settings file doesn't exist, create it with defaults
		return Save()
	}

	// Load existing settings
	return Load()
}

// Load reads settings from the settings file
func Load() error {
	settingsPath := getSettingsPath()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %v", err)
	}

	err = json.Unmarshal(data, Current)
	if err != nil {
		return fmt.Errorf("failed to parse settings file: %v", err)
	}

	return nil
}

// Save writes current settings to the settings file
func Save() error {
	settingsPath := getSettingsPath()

	// Ensure directory exists
	settingsDir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(settingsDir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %v", err)
	}

	data, err := json.MarshalIndent(Current, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %v", err)
	}

	err = os.WriteFile(settingsPath, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write settings file: %v", err)
	}

	return nil
}

// getSettingsPath returns the path to the settings file
func getSettingsPath() string {
	return filepath.Join(configDir(), "settings.json")
}

// AdapterOptions builds editor options from the current settings.
func (s *AppSettings) AdapterOptions() adapter.Options {
	return adapter.Options{
		Height:          s.EditorHeight,
		Width:           s.EditorWidth,
		FontSize:        s.FontSize,
		Theme:           adapter.Theme(s.EditorTheme),
		AutomaticLayout: s.AutomaticLayout,
	}
}

// Validation functions
func (s *AppSettings) Validate() []string {
	var errors []string

	if s.DefaultLanguage == "" {
		errors = append(errors, "Default language must not be empty")
	}

	if !adapter.Theme(s.EditorTheme).Valid() {
		errors = append(errors, "Editor theme must be light, dark, or high-contrast")
	}

	if s.FontSize <= 0 {
		errors = append(errors, "Font size must be greater than 0")
	}

	if s.MinEditorWidth <= 0 {
		errors = append(errors, "Minimum editor width must be greater than 0")
	}

	if s.MinEditorHeight <= 0 {
		errors = append(errors, "Minimum editor height must be greater than 0")
	}

	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		errors = append(errors, "Window dimensions must be greater than 0")
	}

	return errors
}

// Helper functions to convert settings to/from strings for UI
func (s *AppSettings) GetFontSizeString() string {
	return strconv.Itoa(s.FontSize)
}

func (s *AppSettings) SetFontSizeString(value string) error {
	size, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	s.FontSize = size
	return nil
}

func (s *AppSettings) GetWindowWidthString() string {
	return strconv.Itoa(s.WindowWidth)
}

func (s *AppSettings) SetWindowWidthString(value string) error {
	width, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	s.WindowWidth = width
	return nil
}

func (s *AppSettings) GetWindowHeightString() string {
	return strconv.Itoa(s.WindowHeight)
}

func (s *AppSettings) SetWindowHeightString(value string) error {
	height, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	s.WindowHeight = height
	return nil
}

func (s *AppSettings) GetMinEditorWidthString() string {
	return strconv.Itoa(s.MinEditorWidth)
}

func (s *AppSettings) SetMinEditorWidthString(value string) error {
	width, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	s.MinEditorWidth = width
	return nil
}

func (s *AppSettings) GetMinEditorHeightString() string {
	return strconv.Itoa(s.MinEditorHeight)
}

func (s *AppSettings) SetMinEditorHeightString(value string) error {
	height, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	s.MinEditorHeight = height
	return nil
}
