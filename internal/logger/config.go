package logger

// Config holds logging configuration. prefdiff logs to a rotated file by
// default; the terminal is reserved for the UI.
type Config struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size" validate:"min=0"` // MB
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAge     int    `mapstructure:"max_age" validate:"min=0"` // days
	Compress   bool   `mapstructure:"compress"`
}
