package metrics

// Metric names
const (
	MetricNameRoundsStarted    = "cardreveal_rounds_started_total"
	MetricNameRoundsCompleted  = "cardreveal_rounds_completed_total"
	MetricNameBetTotal         = "cardreveal_bet_amount_total"
	MetricNamePayoutTotal      = "cardreveal_payout_amount_total"
	MetricNameRoundMultiplier  = "cardreveal_round_multiplier"
	MetricNameCardOutcomes     = "cardreveal_card_outcomes_total"
	MetricNameIgnoredActions   = "cardreveal_ignored_actions_total"
	MetricNameConnectedClients = "cardreveal_ws_clients"
	MetricNameFlipAckTimeouts  = "cardreveal_flip_ack_timeouts_total"
)

// Help texts
const (
	HelpTextRoundsStarted    = "Rounds that left Idle"
	HelpTextRoundsCompleted  = "Rounds that reached Result"
	HelpTextBetTotal         = "Sum of bets over settled rounds"
	HelpTextPayoutTotal      = "Sum of payouts over settled rounds"
	HelpTextRoundMultiplier  = "Total round multiplier distribution"
	HelpTextCardOutcomes     = "Card outcomes drawn, by multiplier"
	HelpTextIgnoredActions   = "Actions rejected by the input gate or the round state"
	HelpTextConnectedClients = "Connected websocket presentation clients"
	HelpTextFlipAckTimeouts  = "Flips completed by timer because no client acknowledged them"
)

// Labels
const (
	LabelValue  = "value"
	LabelAction = "action"
	LabelState  = "state"
	LabelSpeed  = "speed"
)

// Buckets
var (
	MultiplierBuckets = []float64{0, 0.1, 0.25, 0.5, 1, 2, 5, 10, 25, 100, 1000}
)
