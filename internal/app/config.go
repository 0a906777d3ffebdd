package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration. It is loaded from a YAML
// file (JSON is a YAML subset, so legacy JSON configs load unchanged).
type Config struct {
	Model           ModelConfig     `yaml:"model"`
	DataDir         string          `yaml:"data_dir"`
	SystemPrompts   SystemPrompts   `yaml:"system_prompts"`
	UIText          UIText          `yaml:"ui_text"`
	Messages        MessageTexts    `yaml:"messages"`
	ErrorMessages   ErrorMessages   `yaml:"error_messages"`
	ConsoleMessages ConsoleMessages `yaml:"console_messages"`
}

type ModelConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
}

type SystemPrompts struct {
	Biographical      string `yaml:"biographical"`
	General           string `yaml:"general"`
	QuestionGenerator string `yaml:"question_generator"`
	Default           string `yaml:"default"`
}

type TabText struct {
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	HistoryLabel     string `yaml:"history_label"`
	InputLabel       string `yaml:"input_label"`
	InputPlaceholder string `yaml:"input_placeholder"`
	SubmitButton     string `yaml:"submit_button"`
	ClearButton      string `yaml:"clear_button"`
	InfoLabel        string `yaml:"info_label"`
	RefreshButton    string `yaml:"refresh_button"`
}

type UIText struct {
	AppTitle        string  `yaml:"app_title"`
	MainHeading     string  `yaml:"main_heading"`
	AppSubtitle     string  `yaml:"app_subtitle"`
	BiographicalTab TabText `yaml:"biographical_tab"`
	GeneralTab      TabText `yaml:"general_tab"`
	DataTab         TabText `yaml:"data_tab"`
}

// MessageTexts are user-facing message templates with {name} placeholders.
type MessageTexts struct {
	BiographicalWelcome string `yaml:"biographical_welcome"`
	GeneralWelcome      string `yaml:"general_welcome"`
	NoConversations     string `yaml:"no_conversations"`
	DataStats           string `yaml:"data_stats"`
	PrivacyInfo         string `yaml:"privacy_info"`
}

type ErrorMessages struct {
	OllamaConnection string `yaml:"ollama_connection"`
	AICommunication  string `yaml:"ai_communication"`
}

type ConsoleMessages struct {
	Connected string `yaml:"connected"`
	Launching string `yaml:"launching"`
}

func DefaultConfig() Config {
	return Config{
		Model: ModelConfig{
			Name:    "qwen2.5:7b",
			BaseURL: "http://127.0.0.1:11434",
		},
		SystemPrompts: SystemPrompts{
			Biographical: "You are a thoughtful AI biographer. You help people reflect on their " +
				"lives through warm, curious conversation. Ask gentle follow-up questions, " +
				"notice themes across what the person shares, and keep replies concise.",
			General: "You are a helpful, friendly assistant. Answer clearly and concisely.",
			QuestionGenerator: "You generate a single thoughtful follow-up question for a " +
				"biographical journaling conversation, based on the recent exchanges you are " +
				"shown. Reply with the question only, no preamble.",
			Default: "You are a helpful assistant.",
		},
		UIText: UIText{
			AppTitle:    "Digital Biographer",
			MainHeading: "Digital Biographer",
			AppSubtitle: "A private, local journaling companion",
			BiographicalTab: TabText{
				Title:            "Biography",
				Description:      "Reflect on your life with an AI biographer.",
				HistoryLabel:     "Conversation",
				InputLabel:       "Your answer",
				InputPlaceholder: "Share your thoughts...",
				SubmitButton:     "Send",
				ClearButton:      "New session",
			},
			GeneralTab: TabText{
				Title:            "Chat",
				Description:      "General conversation.",
				HistoryLabel:     "Conversation",
				InputLabel:       "Your message",
				InputPlaceholder: "Type a message...",
				SubmitButton:     "Send",
				ClearButton:      "New session",
			},
			DataTab: TabText{
				Title:         "Data",
				Description:   "Saved conversation statistics.",
				InfoLabel:     "Storage summary",
				RefreshButton: "Refresh",
			},
		},
		Messages: MessageTexts{
			BiographicalWelcome: "Welcome back. Here is something to reflect on:\n\n{question}",
			GeneralWelcome:      "Hello! What would you like to talk about?",
			NoConversations:     "No saved conversations yet.",
			DataStats: "Files: {total_files}\nBiographical sessions: {bio_sessions}\n" +
				"General sessions: {gen_sessions}\nTotal messages: {total_messages}\n" +
				"Data path: {data_path}",
			PrivacyInfo: "All conversations are stored locally on this machine.",
		},
		ErrorMessages: ErrorMessages{
			OllamaConnection: "Could not connect to Ollama: {error}",
			AICommunication:  "Sorry, I could not reach the model: {error}",
		},
		ConsoleMessages: ConsoleMessages{
			Connected: "Connected to model {model}",
			Launching: "Launching Digital Biographer...",
		},
	}
}

// LoadConfig reads the configuration file at path, overlaying it on the
// defaults. A missing or malformed file is an error: configuration problems
// abort startup rather than degrade.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if strings.TrimSpace(cfg.Model.Name) == "" {
		return cfg, fmt.Errorf("config %s: model.name is required", path)
	}
	return cfg, nil
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(base, "biographer", "config.yaml")
}

// renderTemplate substitutes {name} placeholders in a configured template.
func renderTemplate(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
