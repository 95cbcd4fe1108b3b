package config

import "time"

// Application-wide constants organized by domain

// UI and Display Constants
const (
	// Colors
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	EmbedDefaultColor = 0x2B2D31

	// Rarity markers
	EmojiRare     = "✨"
	EmojiUncommon = "🌟"
	EmojiCommon   = "⚪"
)

// Database and Performance Constants
const (
	DefaultQueryTimeout     = 30 * time.Second
	SearchTimeout           = 10 * time.Second
	CommandExecutionTimeout = 10 * time.Second
	NetworkDialTimeout      = 5 * time.Second

	CatalogCacheSize = 1024
)

// Game Mechanics Constants
const (
	// Spin system
	SpinCost           = 2000
	MaxSpinsPerCommand = 30
	SpinConfirmTimeout = 300 * time.Second
	SpinProgressEvery  = 3

	// Card progression
	MaxStar       = 5
	BaseStar      = 1
	StatIncrement = 20

	// Support bonus display
	SupportBonusPlaceholder = "+16%"
	SupportBonusMinTokens   = 4
	SupportBonusMaxStar     = 4
)
