package config

import "time"

/* =========================
   PAY TABLE DEFAULTS
========================= */

// DefaultBets is the bet ladder cycled by the bet button.
var DefaultBets = []float64{0.5, 1, 2, 5, 10}

// DefaultBetIndex selects $1 on startup.
const DefaultBetIndex = 1

// DefaultOutcomes mirrors the shipped pay table. Chance is a relative weight
// (total 200), the 2x value appears twice on purpose.
var DefaultOutcomes = []OutcomeEntry{
	{Value: 10.0, Chance: 3.0},
	{Value: 5.0, Chance: 6.0},
	{Value: 3.0, Chance: 13.0},
	{Value: 2.0, Chance: 23.0},
	{Value: 1.0, Chance: 55.0},
	{Value: 4.0, Chance: 7.0},
	{Value: 2.0, Chance: 9.0},
	{Value: 0.6, Chance: 15.0},
	{Value: 0.3, Chance: 50.0},
	{Value: 0.0, Chance: 19.0},
}

/* =========================
   API CONFIGURATION
========================= */

const (
	ServerAddr = "0.0.0.0:8080"

	// CORS settings
	AllowOrigin = "*"

	ShutdownTimeout = 10 * time.Second
)

/* =========================
   WEBSOCKET CONFIGURATION
========================= */

const (
	WSReadDeadline  = 60 * time.Second
	WSWriteDeadline = 10 * time.Second
	WSPingInterval  = 30 * time.Second

	// Buffer sizes
	WSReadBufferSize  = 1024
	WSWriteBufferSize = 1024
	WSSendQueueSize   = 256

	MaxMessageSize = 4 * 1024

	// A flip completes on the first client ack, or after its duration plus
	// this grace when no client answers.
	FlipAckGrace = 2 * time.Second
)

/* =========================
   REDIS CONFIGURATION
========================= */

const (
	RedisAddr = "localhost:6379"

	// Key: cardreveal:settings:{profile}
	RedisSettingsKey = "cardreveal:settings:%s"
	SettingsTTL      = 30 * 24 * time.Hour
	DefaultProfile   = "default"

	RedisOpTimeout = 3 * time.Second
)

/* =========================
   SIMULATION
========================= */

const (
	SimulationRounds = 1_000_000
	SimulationBet    = 1.0
)
