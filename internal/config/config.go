// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Content  ContentConfig  `yaml:"content"`
	Playback PlaybackConfig `yaml:"playback"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// ContentConfig holds the data files the viewer loads.
type ContentConfig struct {
	RigFile       string   `yaml:"rig_file"`       // YAML bone tree definition
	AnimationDocs []string `yaml:"animation_docs"` // exchange-format documents
	BoneMap       string   `yaml:"bone_map"`       // external -> canonical bone names
	TextureDir    string   `yaml:"texture_dir"`    // base directory for bone images
}

// PlaybackConfig holds animation playback settings.
type PlaybackConfig struct {
	InitialAnimation string  `yaml:"initial_animation"`
	BlendSeconds     float32 `yaml:"blend_seconds"`
	Speed            float32 `yaml:"speed"` // time multiplier, 1.0 = realtime
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
		},
		Content: ContentConfig{
			RigFile:    "assets/rig.yaml",
			TextureDir: "assets/textures",
		},
		Playback: PlaybackConfig{
			BlendSeconds: 0.25,
			Speed:        1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
